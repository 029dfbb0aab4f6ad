package mocks

import (
	"context"

	"procdocs/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockAPI) GetVendor(ctx context.Context, id string) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockAPI) FetchSignatureImage(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) InlineSignatureImages(ctx context.Context, sigs []model.Signature) []model.Signature {
	args := m.Called(ctx, sigs)
	if args.Get(0) == nil {
		return sigs
	}
	return args.Get(0).([]model.Signature)
}

func (m *MockAPI) UploadDocument(ctx context.Context, requestID string, docType model.DocumentType, filename string, data []byte) error {
	args := m.Called(ctx, requestID, docType, filename, data)
	return args.Error(0)
}
