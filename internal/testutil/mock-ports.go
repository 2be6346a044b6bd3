package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/bridge"
	"github.com/workbench-ml/inference-bridge/pkg/dfstore"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// MockInvoker is a mock of InferenceInvoker.
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, endpointName string, tbl *table.Table) (*table.Table, error) {
	args := m.Called(ctx, endpointName, tbl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockInvoker) EndpointExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoker) DescribeEndpoint(ctx context.Context, name string) (*bridge.EndpointInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bridge.EndpointInfo), args.Error(1)
}

func (m *MockInvoker) ListEndpoints(ctx context.Context) ([]bridge.EndpointInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bridge.EndpointInfo), args.Error(1)
}

// MockTableStore is a mock of TableStore.
type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) Get(ctx context.Context, name string) (*table.Table, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableStore) Upsert(ctx context.Context, name string, tbl *table.Table) error {
	args := m.Called(ctx, name, tbl)
	return args.Error(0)
}

func (m *MockTableStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTableStore) Details(ctx context.Context) ([]dfstore.Detail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dfstore.Detail), args.Error(1)
}

func (m *MockTableStore) Summary(ctx context.Context) ([]dfstore.SummaryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dfstore.SummaryEntry), args.Error(1)
}

// MockCatalogClient is a mock of CatalogClient.
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) EnsureDatabase(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCatalogClient) RegisterTable(ctx context.Context, database, tableName, s3Path string, tbl *table.Table) error {
	args := m.Called(ctx, database, tableName, s3Path, tbl)
	return args.Error(0)
}

func (m *MockCatalogClient) DeleteTable(ctx context.Context, database, tableName string) error {
	args := m.Called(ctx, database, tableName)
	return args.Error(0)
}

// MockRunRepo is a mock of InferenceRunRepository.
type MockRunRepo struct {
	mock.Mock
}

func (m *MockRunRepo) Create(ctx context.Context, run *domain.InferenceRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InferenceRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InferenceRun), args.Error(1)
}

func (m *MockRunRepo) List(ctx context.Context, filter ports.RunListFilter) ([]*domain.InferenceRun, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.InferenceRun), args.Int(1), args.Error(2)
}

// Ensure interface compliance
var (
	_ ports.InferenceInvoker       = (*MockInvoker)(nil)
	_ ports.TableStore             = (*MockTableStore)(nil)
	_ ports.CatalogClient          = (*MockCatalogClient)(nil)
	_ ports.InferenceRunRepository = (*MockRunRepo)(nil)
)
