package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/testutil"
)

func TestCatalogEnsureDatabase(t *testing.T) {
	catalog := new(testutil.MockCatalogClient)
	svc := NewCatalogService(catalog)

	catalog.On("EnsureDatabase", mock.Anything, "inference_store").Return(nil)

	require.NoError(t, svc.EnsureDatabase(context.Background(), "inference_store"))
	assert.ErrorIs(t, svc.EnsureDatabase(context.Background(), ""), domain.ErrInvalidDatabaseName)
	catalog.AssertExpectations(t)
}

func TestCatalogRegisterTable(t *testing.T) {
	catalog := new(testutil.MockCatalogClient)
	svc := NewCatalogService(catalog)

	tbl := featureTable()
	catalog.On("RegisterTable", mock.Anything, "inference_store", "predictions",
		"s3://ml-bucket/athena/predictions", tbl).Return(nil)

	err := svc.RegisterTable(context.Background(), "inference_store", "predictions",
		"s3://ml-bucket/athena/predictions", tbl)
	require.NoError(t, err)
	catalog.AssertExpectations(t)
}

func TestCatalogRegisterTableValidation(t *testing.T) {
	svc := NewCatalogService(new(testutil.MockCatalogClient))
	ctx := context.Background()
	tbl := featureTable()

	assert.ErrorIs(t, svc.RegisterTable(ctx, "", "t", "s3://b/k", tbl), domain.ErrInvalidDatabaseName)
	assert.ErrorIs(t, svc.RegisterTable(ctx, "db", "", "s3://b/k", tbl), domain.ErrInvalidTableName)
	assert.ErrorIs(t, svc.RegisterTable(ctx, "db", "t", "", tbl), domain.ErrInvalidS3Path)
	assert.ErrorIs(t, svc.RegisterTable(ctx, "db", "t", "s3://b/k", nil), domain.ErrEmptyTable)
}

func TestCatalogDeleteTable(t *testing.T) {
	catalog := new(testutil.MockCatalogClient)
	svc := NewCatalogService(catalog)

	catalog.On("DeleteTable", mock.Anything, "inference_store", "predictions").Return(nil)

	require.NoError(t, svc.DeleteTable(context.Background(), "inference_store", "predictions"))
	assert.ErrorIs(t, svc.DeleteTable(context.Background(), "", "t"), domain.ErrInvalidDatabaseName)
	assert.ErrorIs(t, svc.DeleteTable(context.Background(), "db", ""), domain.ErrInvalidTableName)
	catalog.AssertExpectations(t)
}
