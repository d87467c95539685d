// Package postgres is a store.Store backed by PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spigell/campus-match/internal/store"
)

// Connect opens a pgx pool and pings the server.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

var _ store.Store = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the table if needed.
func NewRepository(ctx context.Context, pool *pgxpool.Pool) (*Repository, error) {
	r := &Repository{pool: pool}
	if err := r.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return r, nil
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS match_analyses (
	id UUID PRIMARY KEY,
	student_id TEXT NOT NULL,
	job_id TEXT NOT NULL,
	match_result JSONB,
	profile JSONB,
	suggestions JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (student_id, job_id)
);
`)
	return err
}

// Upsert inserts rec or replaces the payload of the record with the same key.
func (r *Repository) Upsert(ctx context.Context, rec store.Record) (store.Record, error) {
	if err := rec.Key.Validate(); err != nil {
		return store.Record{}, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	p, err := encodePayload(rec)
	if err != nil {
		return store.Record{}, err
	}

	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
INSERT INTO match_analyses (id, student_id, job_id, match_result, profile, suggestions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
ON CONFLICT (student_id, job_id) DO UPDATE SET
	match_result = EXCLUDED.match_result,
	profile = EXCLUDED.profile,
	suggestions = EXCLUDED.suggestions,
	updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at
`, rec.ID, rec.Key.StudentID, rec.Key.JobID, p.match, p.profile, p.suggestions, now)

	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return store.Record{}, fmt.Errorf("upsert analysis: %w", err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

func (r *Repository) Get(ctx context.Context, key store.Key) (store.Record, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, match_result, profile, suggestions, created_at, updated_at
FROM match_analyses WHERE student_id = $1 AND job_id = $2
`, key.StudentID, key.JobID)

	rec := store.Record{Key: key}
	var p payload
	if err := row.Scan(&rec.ID, &p.match, &p.profile, &p.suggestions, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, store.ErrNotFound
		}
		return store.Record{}, fmt.Errorf("get analysis: %w", err)
	}
	if err := decodePayload(p, &rec); err != nil {
		return store.Record{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// payload holds the JSONB columns. A nil slice is stored as SQL NULL.
type payload struct {
	match       []byte
	profile     []byte
	suggestions []byte
}

func encodePayload(rec store.Record) (payload, error) {
	var p payload
	var err error
	if rec.Match != nil {
		if p.match, err = json.Marshal(rec.Match); err != nil {
			return payload{}, fmt.Errorf("marshal match: %w", err)
		}
	}
	if rec.Profile != nil {
		if p.profile, err = json.Marshal(rec.Profile); err != nil {
			return payload{}, fmt.Errorf("marshal profile: %w", err)
		}
	}
	if rec.Suggestions != nil {
		if p.suggestions, err = json.Marshal(rec.Suggestions); err != nil {
			return payload{}, fmt.Errorf("marshal suggestions: %w", err)
		}
	}
	return p, nil
}

func decodePayload(p payload, rec *store.Record) error {
	if len(p.match) > 0 {
		if err := json.Unmarshal(p.match, &rec.Match); err != nil {
			return fmt.Errorf("unmarshal match: %w", err)
		}
	}
	if len(p.profile) > 0 {
		if err := json.Unmarshal(p.profile, &rec.Profile); err != nil {
			return fmt.Errorf("unmarshal profile: %w", err)
		}
	}
	if len(p.suggestions) > 0 {
		if err := json.Unmarshal(p.suggestions, &rec.Suggestions); err != nil {
			return fmt.Errorf("unmarshal suggestions: %w", err)
		}
	}
	return nil
}
