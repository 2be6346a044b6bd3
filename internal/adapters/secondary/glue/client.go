package glue

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/catalog"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

type catalogClient struct {
	inner *catalog.Client
}

// NewCatalogClient creates the Glue catalog adapter.
func NewCatalogClient(awsCfg awssdk.Config) ports.CatalogClient {
	return &catalogClient{inner: catalog.New(awsCfg)}
}

// NewCatalogClientWithInner creates the adapter over an existing client.
func NewCatalogClientWithInner(inner *catalog.Client) ports.CatalogClient {
	return &catalogClient{inner: inner}
}

func (c *catalogClient) EnsureDatabase(ctx context.Context, name string) error {
	return c.inner.EnsureDatabase(ctx, name)
}

func (c *catalogClient) RegisterTable(ctx context.Context, database, tableName, s3Path string, tbl *table.Table) error {
	return c.inner.RegisterTable(ctx, database, tableName, s3Path, tbl)
}

func (c *catalogClient) DeleteTable(ctx context.Context, database, tableName string) error {
	return c.inner.DeleteTable(ctx, database, tableName)
}

// Ensure interface compliance
var _ ports.CatalogClient = (*catalogClient)(nil)
