package dto

import (
	"time"

	"github.com/workbench-ml/inference-bridge/pkg/dfstore"
)

// ============================================================================
// Table Store DTOs
// ============================================================================

type UpsertTableRequest struct {
	Rows []map[string]any `json:"rows" binding:"required,min=1"`
}

type StoredTableDetail struct {
	Name     string    `json:"name"`
	S3URI    string    `json:"s3_uri"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type StoredTableSummary struct {
	Name     string  `json:"name"`
	SizeMB   float64 `json:"size_mb"`
	Modified string  `json:"modified"`
}

type ListStoredTablesResponse struct {
	Details   []StoredTableDetail  `json:"details,omitempty"`
	Summaries []StoredTableSummary `json:"summaries,omitempty"`
	Total     int                  `json:"total"`
}

func ToStoredTableDetails(details []dfstore.Detail) []StoredTableDetail {
	out := make([]StoredTableDetail, len(details))
	for i, d := range details {
		out[i] = StoredTableDetail{
			Name:     d.Name,
			S3URI:    d.S3URI,
			Size:     d.Size,
			Modified: d.Modified,
		}
	}
	return out
}

func ToStoredTableSummaries(entries []dfstore.SummaryEntry) []StoredTableSummary {
	out := make([]StoredTableSummary, len(entries))
	for i, e := range entries {
		out[i] = StoredTableSummary{
			Name:     e.Name,
			SizeMB:   e.SizeMB,
			Modified: e.Modified,
		}
	}
	return out
}
