package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshsense/spoilage-web/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS submissions (
		id          UUID PRIMARY KEY,
		readings    JSONB NOT NULL,
		label       TEXT NOT NULL DEFAULT '',
		confidence  DOUBLE PRECISION NOT NULL DEFAULT 0,
		prediction  DOUBLE PRECISION NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT '',
		outcome     TEXT NOT NULL,
		source      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS submissions_created_at_idx ON submissions (created_at DESC);
`

// PostgresRepository implements domain.SubmissionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the submissions table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveSubmission persists one submit cycle to PostgreSQL
func (r *PostgresRepository) SaveSubmission(ctx context.Context, s domain.Submission) error {
	readings, err := json.Marshal(s.Readings)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode readings: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, readings, label, confidence, prediction, error, outcome, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.pool.Exec(ctx, query,
		s.ID, readings, s.Result.Label, s.Result.Confidence, s.Result.Prediction,
		s.Result.Error, s.Outcome, s.Source, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save submission: %w", err)
	}

	return nil
}

// RecentSubmissions retrieves the newest submissions from PostgreSQL
func (r *PostgresRepository) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	query := `
		SELECT id::text, readings, label, confidence, prediction, error, outcome, source, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query submissions: %w", err)
	}
	defer rows.Close()

	var results []domain.Submission
	for rows.Next() {
		var (
			s        domain.Submission
			readings []byte
		)
		err := rows.Scan(
			&s.ID, &readings, &s.Result.Label, &s.Result.Confidence, &s.Result.Prediction,
			&s.Result.Error, &s.Outcome, &s.Source, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan submission row: %w", err)
		}
		if err := json.Unmarshal(readings, &s.Readings); err != nil {
			return nil, fmt.Errorf("postgres: failed to decode readings: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read submissions: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
