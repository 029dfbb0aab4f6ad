package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"procdocs/internal/docmodel"
	"procdocs/internal/model"
	"procdocs/internal/render"
	"procdocs/internal/service"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Documents(ctx context.Context, requestID string, opts docmodel.BuildOptions) ([]model.DocumentDescriptor, error) {
	args := m.Called(ctx, requestID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDescriptor), args.Error(1)
}

func (m *MockExportService) Preview(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*render.Layout, error) {
	args := m.Called(ctx, requestID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Layout), args.Error(1)
}

func (m *MockExportService) ExportPDF(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*service.ExportFile, error) {
	args := m.Called(ctx, requestID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) ExportAndStore(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*model.ExportRecord, error) {
	args := m.Called(ctx, requestID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportRecord), args.Error(1)
}

func (m *MockExportService) ExportToBackend(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*service.ExportFile, error) {
	args := m.Called(ctx, requestID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) EmailExport(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*service.ExportFile, error) {
	args := m.Called(ctx, requestID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) ComposeSnapshotPDF(ctx context.Context, name string, img []byte) (*service.ExportFile, error) {
	args := m.Called(ctx, name, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) ListExports(ctx context.Context, requestID string, limit, offset int) (*service.ExportListResult, error) {
	args := m.Called(ctx, requestID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportListResult), args.Error(1)
}

func (m *MockExportService) GetExport(ctx context.Context, id string) (*model.ExportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportRecord), args.Error(1)
}

func (m *MockExportService) ExportDownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockExportService) DeleteExport(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
