package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	// -------------------------------
	// RECOMMENDATION REQUESTS
	// -------------------------------
	requestsSQL := `
		CREATE TABLE IF NOT EXISTS recommendation_requests (
			id UUID PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL DEFAULT '',
			age VARCHAR(32) NOT NULL,
			income VARCHAR(64) NOT NULL,
			dependents VARCHAR(32) NOT NULL,
			risk VARCHAR(32) NOT NULL,
			outcome VARCHAR(16) NOT NULL,
			status_code INTEGER NULL,
			result_count INTEGER NOT NULL DEFAULT 0,
			error TEXT NULL,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, requestsSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS recommendation_requests_created_at_idx
		ON recommendation_requests (created_at)
	`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		return err
	}

	return nil
}
