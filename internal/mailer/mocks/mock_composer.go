package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"procdocs/internal/mailer"
)

type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Compose(ctx context.Context, subject string, body string, attachments []mailer.Attachment) error {
	args := m.Called(ctx, subject, body, attachments)
	return args.Error(0)
}
