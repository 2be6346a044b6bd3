package services

import (
	"context"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// CatalogService exposes the data catalog operations.
type CatalogService struct {
	catalog ports.CatalogClient
}

func NewCatalogService(catalog ports.CatalogClient) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// EnsureDatabase creates the catalog database if it is missing.
func (s *CatalogService) EnsureDatabase(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidDatabaseName
	}
	return s.catalog.EnsureDatabase(ctx, name)
}

// RegisterTable stores the table under s3Path and registers it in the
// catalog database.
func (s *CatalogService) RegisterTable(ctx context.Context, database, tableName, s3Path string, tbl *table.Table) error {
	if database == "" {
		return domain.ErrInvalidDatabaseName
	}
	if tableName == "" {
		return domain.ErrInvalidTableName
	}
	if s3Path == "" {
		return domain.ErrInvalidS3Path
	}
	if tbl == nil || tbl.IsEmpty() {
		return domain.ErrEmptyTable
	}
	return s.catalog.RegisterTable(ctx, database, tableName, s3Path, tbl)
}

// DeleteTable removes a table from the catalog database.
func (s *CatalogService) DeleteTable(ctx context.Context, database, tableName string) error {
	if database == "" {
		return domain.ErrInvalidDatabaseName
	}
	if tableName == "" {
		return domain.ErrInvalidTableName
	}
	return s.catalog.DeleteTable(ctx, database, tableName)
}
