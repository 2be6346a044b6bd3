package dto

import (
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// ============================================================================
// Inference DTOs
// ============================================================================

type InferenceRequest struct {
	Rows []map[string]any `json:"rows" binding:"required,min=1"`
}

func (r InferenceRequest) ToTable() *table.Table {
	rows := make([]table.Row, len(r.Rows))
	for i, m := range r.Rows {
		rows[i] = table.Row(m)
	}
	return table.FromRows(rows)
}

type TableResponse struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

func ToTableResponse(tbl *table.Table) TableResponse {
	rows := make([]map[string]any, tbl.NumRows())
	for i, r := range tbl.Rows() {
		rows[i] = map[string]any(r)
	}
	return TableResponse{
		Columns:  tbl.Columns(),
		Rows:     rows,
		RowCount: tbl.NumRows(),
	}
}
