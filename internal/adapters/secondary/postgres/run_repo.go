package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
)

type inferenceRunRepo struct {
	pool *pgxpool.Pool
}

// NewInferenceRunRepository creates a run-history repository on Postgres.
func NewInferenceRunRepository(pool *pgxpool.Pool) ports.InferenceRunRepository {
	return &inferenceRunRepo{pool: pool}
}

// EnsureSchema creates the run-history table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS inference_run (
			id            UUID PRIMARY KEY,
			created_at    TIMESTAMPTZ NOT NULL,
			endpoint_name TEXT NOT NULL,
			input_rows    INTEGER NOT NULL,
			output_rows   INTEGER NOT NULL,
			latency_ms    BIGINT NOT NULL,
			status        TEXT NOT NULL,
			error         TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS inference_run_endpoint_idx
			ON inference_run (endpoint_name, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure inference_run schema: %w", err)
	}
	return nil
}

func (r *inferenceRunRepo) Create(ctx context.Context, run *domain.InferenceRun) error {
	query := `
		INSERT INTO inference_run
			(id, created_at, endpoint_name, input_rows, output_rows, latency_ms, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.CreatedAt, run.EndpointName,
		run.InputRows, run.OutputRows, run.LatencyMS,
		string(run.Status), run.Error,
	)
	if err != nil {
		return fmt.Errorf("create inference run: %w", err)
	}
	return nil
}

func (r *inferenceRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InferenceRun, error) {
	query := `
		SELECT id, created_at, endpoint_name, input_rows, output_rows, latency_ms, status, error
		FROM inference_run
		WHERE id = $1
	`

	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get inference run by id: %w", err)
	}
	return run, nil
}

func (r *inferenceRunRepo) List(ctx context.Context, filter ports.RunListFilter) ([]*domain.InferenceRun, int, error) {
	where := ""
	args := []any{}
	if filter.EndpointName != "" {
		where = "WHERE endpoint_name = $1"
		args = append(args, filter.EndpointName)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM inference_run %s", where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inference runs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, endpoint_name, input_rows, output_rows, latency_ms, status, error
		FROM inference_run
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inference runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.InferenceRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inference run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list inference runs: %w", err)
	}
	return runs, total, nil
}

func scanRun(row pgx.Row) (*domain.InferenceRun, error) {
	var run domain.InferenceRun
	var status string
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.EndpointName,
		&run.InputRows, &run.OutputRows, &run.LatencyMS,
		&status, &run.Error,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	return &run, nil
}

// Ensure interface compliance
var _ ports.InferenceRunRepository = (*inferenceRunRepo)(nil)
