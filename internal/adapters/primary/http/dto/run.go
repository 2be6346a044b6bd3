package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
)

// ============================================================================
// Run History DTOs
// ============================================================================

type RunResponse struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	EndpointName string    `json:"endpoint_name"`
	InputRows    int       `json:"input_rows"`
	OutputRows   int       `json:"output_rows"`
	LatencyMS    int64     `json:"latency_ms"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}

type ListRunsResponse struct {
	Items      []RunResponse `json:"items"`
	Total      int           `json:"total"`
	PageSize   int           `json:"page_size"`
	NextOffset int           `json:"next_offset"`
}

func ToRunResponse(run *domain.InferenceRun) RunResponse {
	return RunResponse{
		ID:           run.ID,
		CreatedAt:    run.CreatedAt,
		EndpointName: run.EndpointName,
		InputRows:    run.InputRows,
		OutputRows:   run.OutputRows,
		LatencyMS:    run.LatencyMS,
		Status:       string(run.Status),
		Error:        run.Error,
	}
}
