package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
)

// RunListFilter narrows a run-history listing.
type RunListFilter struct {
	EndpointName string
	Limit        int
	Offset       int
}

// InferenceRunRepository is the output port to run-history persistence.
type InferenceRunRepository interface {
	Create(ctx context.Context, run *domain.InferenceRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InferenceRun, error)
	List(ctx context.Context, filter RunListFilter) ([]*domain.InferenceRun, int, error)
}
