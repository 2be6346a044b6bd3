package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/bridge"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// InferenceService runs fast inference through the configured invoker and,
// when a run repository is wired, records every invocation.
type InferenceService struct {
	invoker ports.InferenceInvoker
	runRepo ports.InferenceRunRepository
}

// NewInferenceService creates the service. runRepo may be nil; run history
// is then disabled.
func NewInferenceService(invoker ports.InferenceInvoker, runRepo ports.InferenceRunRepository) *InferenceService {
	return &InferenceService{invoker: invoker, runRepo: runRepo}
}

// FastInference invokes the endpoint with the table and returns the
// prediction table, row-aligned with the input.
func (s *InferenceService) FastInference(ctx context.Context, endpointName string, tbl *table.Table) (*table.Table, error) {
	if endpointName == "" {
		return nil, domain.ErrInvalidEndpointName
	}
	if tbl == nil || tbl.IsEmpty() {
		return nil, domain.ErrEmptyTable
	}

	start := time.Now()
	out, err := s.invoker.Invoke(ctx, endpointName, tbl)
	s.recordRun(ctx, endpointName, tbl.NumRows(), out, time.Since(start), err)
	return out, err
}

func (s *InferenceService) recordRun(ctx context.Context, endpointName string, inputRows int, out *table.Table, latency time.Duration, invokeErr error) {
	if s.runRepo == nil {
		return
	}

	run := &domain.InferenceRun{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		EndpointName: endpointName,
		InputRows:    inputRows,
		LatencyMS:    latency.Milliseconds(),
		Status:       domain.RunStatusSucceeded,
	}
	if invokeErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = invokeErr.Error()
	} else {
		run.OutputRows = out.NumRows()
	}

	// Run history is best effort; a recording failure must not fail the call.
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.WithError(err).WithField("endpoint", endpointName).Warn("failed to record inference run")
	}
}

// EndpointExists reports whether the endpoint is deployed.
func (s *InferenceService) EndpointExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, domain.ErrInvalidEndpointName
	}
	return s.invoker.EndpointExists(ctx, name)
}

// DescribeEndpoint returns endpoint metadata.
func (s *InferenceService) DescribeEndpoint(ctx context.Context, name string) (*bridge.EndpointInfo, error) {
	if name == "" {
		return nil, domain.ErrInvalidEndpointName
	}
	return s.invoker.DescribeEndpoint(ctx, name)
}

// ListEndpoints returns metadata for all visible endpoints.
func (s *InferenceService) ListEndpoints(ctx context.Context) ([]bridge.EndpointInfo, error) {
	return s.invoker.ListEndpoints(ctx)
}

// GetRun returns one recorded inference run.
func (s *InferenceService) GetRun(ctx context.Context, id uuid.UUID) (*domain.InferenceRun, error) {
	if s.runRepo == nil {
		return nil, domain.ErrRunHistoryDisabled
	}
	return s.runRepo.GetByID(ctx, id)
}

// ListRuns returns recorded inference runs, newest first.
func (s *InferenceService) ListRuns(ctx context.Context, filter ports.RunListFilter) ([]*domain.InferenceRun, int, error) {
	if s.runRepo == nil {
		return nil, 0, domain.ErrRunHistoryDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.runRepo.List(ctx, filter)
}
