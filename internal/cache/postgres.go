package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/martin/skillsource/internal/taxonomy"
)

// PostgresStore is a Store backed by a PostgreSQL table, for deployments
// where the skill cache is shared between the build job and the exporters.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and ensures the backing table
// exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS skill_cache (
			skill_key  TEXT PRIMARY KEY,
			normalized TEXT NOT NULL,
			onet       JSONB,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create skill_cache table: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get returns the record for key, if present.
func (s *PostgresStore) Get(ctx context.Context, key string) (*Record, bool, error) {
	var normalized string
	var onetJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT normalized, onet FROM skill_cache WHERE skill_key = $1`,
		key,
	).Scan(&normalized, &onetJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cache record %s: %w", key, err)
	}

	rec := &Record{Normalized: normalized}
	if len(onetJSON) > 0 {
		var entry taxonomy.Entry
		if err := json.Unmarshal(onetJSON, &entry); err != nil {
			return nil, false, fmt.Errorf("corrupt cache record %s: %w", key, err)
		}
		rec.Taxonomy = &entry
	}
	return rec, true, nil
}

// Set upserts a record; last write wins at the key level.
func (s *PostgresStore) Set(ctx context.Context, key string, rec Record) error {
	var onetJSON []byte
	if rec.Taxonomy != nil {
		data, err := json.Marshal(rec.Taxonomy)
		if err != nil {
			return fmt.Errorf("failed to marshal taxonomy entry: %w", err)
		}
		onetJSON = data
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO skill_cache (skill_key, normalized, onet)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (skill_key) DO UPDATE SET normalized = $2, onet = $3, updated_at = NOW()`,
		key, rec.Normalized, onetJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save cache record %s: %w", key, err)
	}
	return nil
}

// Remove deletes the record for key.
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM skill_cache WHERE skill_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to remove cache record %s: %w", key, err)
	}
	return nil
}
