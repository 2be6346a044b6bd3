package ports

import (
	"context"

	"github.com/workbench-ml/inference-bridge/pkg/dfstore"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// TableStore is the output port to named table storage.
type TableStore interface {
	Get(ctx context.Context, name string) (*table.Table, error)
	Upsert(ctx context.Context, name string, tbl *table.Table) error
	Delete(ctx context.Context, name string) error
	Details(ctx context.Context) ([]dfstore.Detail, error)
	Summary(ctx context.Context) ([]dfstore.SummaryEntry, error)
}
