package domain

import "errors"

// ============================================================================
// Inference Errors
// ============================================================================

// Validation errors
var (
	ErrInvalidEndpointName = errors.New("endpoint name is required")
	ErrEmptyTable          = errors.New("input table must have at least one row")
)

// Not found errors
var (
	ErrEndpointNotFound = errors.New("endpoint not found")
)

// ============================================================================
// Table Store Errors
// ============================================================================

var (
	ErrInvalidTableName    = errors.New("table name is required")
	ErrStoredTableNotFound = errors.New("stored table not found")
)

// ============================================================================
// Catalog Errors
// ============================================================================

var (
	ErrInvalidDatabaseName = errors.New("database name is required")
	ErrInvalidS3Path       = errors.New("s3 path is required")
)

// ============================================================================
// Run History Errors
// ============================================================================

var (
	ErrRunNotFound        = errors.New("inference run not found")
	ErrRunHistoryDisabled = errors.New("run history is not enabled")
)
