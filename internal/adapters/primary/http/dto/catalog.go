package dto

// ============================================================================
// Catalog DTOs
// ============================================================================

type RegisterTableRequest struct {
	S3Path string           `json:"s3_path" binding:"required"`
	Rows   []map[string]any `json:"rows" binding:"required,min=1"`
}
