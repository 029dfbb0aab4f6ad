package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"procdocs/internal/model"
	"procdocs/internal/repository"
)

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) Create(ctx context.Context, rec *model.ExportRecord) (*model.ExportRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportRecord), args.Error(1)
}

func (m *MockExportRepository) FindByID(ctx context.Context, id string) (*model.ExportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportRecord), args.Error(1)
}

func (m *MockExportRepository) List(ctx context.Context, requestID string, pq repository.PageQuery) (*repository.PageResult[model.ExportRecord], error) {
	args := m.Called(ctx, requestID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ExportRecord]), args.Error(1)
}

func (m *MockExportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
