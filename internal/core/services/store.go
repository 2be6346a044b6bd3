package services

import (
	"context"
	"strings"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/dfstore"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// StoreService exposes the named table store.
type StoreService struct {
	store ports.TableStore
}

func NewStoreService(store ports.TableStore) *StoreService {
	return &StoreService{store: store}
}

// Get retrieves a stored table by name.
func (s *StoreService) Get(ctx context.Context, name string) (*table.Table, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, name)
}

// Upsert stores a table under name, replacing any previous version.
func (s *StoreService) Upsert(ctx context.Context, name string, tbl *table.Table) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if tbl == nil || tbl.IsEmpty() {
		return domain.ErrEmptyTable
	}
	return s.store.Upsert(ctx, name, tbl)
}

// Delete removes a stored table.
func (s *StoreService) Delete(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, name)
}

// Details lists stored tables with object metadata.
func (s *StoreService) Details(ctx context.Context) ([]dfstore.Detail, error) {
	return s.store.Details(ctx)
}

// Summary lists stored tables with human-oriented sizes and timestamps.
func (s *StoreService) Summary(ctx context.Context) ([]dfstore.SummaryEntry, error) {
	return s.store.Summary(ctx)
}

// normalizeName trims the leading slash the listing format uses, so
// "/holdout/eval" and "holdout/eval" refer to the same table.
func normalizeName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", domain.ErrInvalidTableName
	}
	return name, nil
}
