package ports

import (
	"context"

	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// CatalogClient is the output port to the data catalog.
type CatalogClient interface {
	EnsureDatabase(ctx context.Context, name string) error
	RegisterTable(ctx context.Context, database, tableName, s3Path string, tbl *table.Table) error
	DeleteTable(ctx context.Context, database, tableName string) error
}
