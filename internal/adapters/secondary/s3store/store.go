package s3store

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/workbench-ml/inference-bridge/internal/config"
	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/dfstore"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

type tableStore struct {
	inner *dfstore.Store
}

// NewTableStore creates the S3 table-store adapter. With no bucket in the
// config the bucket name is resolved from parameter store.
func NewTableStore(ctx context.Context, awsCfg awssdk.Config, cfg *config.StoreConfig) (ports.TableStore, error) {
	var opts []dfstore.Option
	if cfg.Bucket != "" {
		opts = append(opts, dfstore.WithBucket(cfg.Bucket))
	}
	if cfg.Prefix != "" {
		opts = append(opts, dfstore.WithPrefix(cfg.Prefix))
	}
	inner, err := dfstore.New(ctx, awsCfg, opts...)
	if err != nil {
		return nil, err
	}
	return &tableStore{inner: inner}, nil
}

// NewTableStoreWithInner creates the adapter over an existing store.
func NewTableStoreWithInner(inner *dfstore.Store) ports.TableStore {
	return &tableStore{inner: inner}
}

func (s *tableStore) Get(ctx context.Context, name string) (*table.Table, error) {
	tbl, err := s.inner.Get(ctx, name)
	if err != nil {
		if errors.Is(err, dfstore.ErrTableNotFound) {
			return nil, domain.ErrStoredTableNotFound
		}
		return nil, err
	}
	return tbl, nil
}

func (s *tableStore) Upsert(ctx context.Context, name string, tbl *table.Table) error {
	return s.inner.Upsert(ctx, name, tbl)
}

func (s *tableStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *tableStore) Details(ctx context.Context) ([]dfstore.Detail, error) {
	return s.inner.Details(ctx)
}

func (s *tableStore) Summary(ctx context.Context) ([]dfstore.SummaryEntry, error) {
	return s.inner.Summary(ctx)
}

// Ensure interface compliance
var _ ports.TableStore = (*tableStore)(nil)
