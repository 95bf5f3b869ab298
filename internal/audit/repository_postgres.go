package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRecorder struct {
	db *pgxpool.Pool
}

func NewPostgresRecorder(db *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (r *PostgresRecorder) Record(ctx context.Context, s Submission) error {
	var errText *string
	if s.Error != "" {
		errText = &s.Error
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO recommendation_requests (
			id,
			session_id,
			age,
			income,
			dependents,
			risk,
			outcome,
			status_code,
			result_count,
			error,
			duration_ms,
			created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		s.ID,
		s.SessionID,
		s.Data.Age,
		s.Data.Income,
		s.Data.Dependents,
		s.Data.Risk,
		s.Outcome,
		s.StatusCode,
		s.ResultCount,
		errText,
		s.Duration.Milliseconds(),
		s.CreatedAt,
	)
	return err
}

// Recent returns the latest submissions, newest first.
func (r *PostgresRecorder) Recent(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			session_id,
			age,
			income,
			dependents,
			risk,
			outcome,
			status_code,
			result_count,
			COALESCE(error, ''),
			duration_ms,
			created_at
		FROM recommendation_requests
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission

	for rows.Next() {
		var s Submission
		var durationMS int64
		if err := rows.Scan(
			&s.ID,
			&s.SessionID,
			&s.Data.Age,
			&s.Data.Income,
			&s.Data.Dependents,
			&s.Data.Risk,
			&s.Outcome,
			&s.StatusCode,
			&s.ResultCount,
			&s.Error,
			&durationMS,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, s)
	}

	return out, rows.Err()
}
