// Package postgres provides Postgres-backed persistence for analysis
// records.
package postgres

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config controls the Postgres connection pool used for analysis rows.
type Config struct {
	DSN             string
	Table           string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type execCloser interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Close()
}

// Store writes analysis records into Postgres.
type Store struct {
	pool  execCloser
	table string
}

// New creates a Postgres-backed Store using the provided config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	table := cfg.Table
	if table == "" {
		table = "analyses"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: pool, table: table}, nil
}

// NewWithPool constructs a Store from an existing pool (primarily for
// testing).
func NewWithPool(pool execCloser, table string) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "analyses"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Store{pool: pool, table: table}, nil
}

// SaveAnalysis inserts one analysis record. Expected schema:
//
//	CREATE TABLE analyses (
//	    id            TEXT PRIMARY KEY,
//	    url           TEXT NOT NULL,
//	    action        TEXT NOT NULL,
//	    status_code   INT NOT NULL,
//	    sample_hash   TEXT NOT NULL,
//	    sentences     INT NOT NULL,
//	    fetched_at    TIMESTAMPTZ NOT NULL,
//	    fetch_ms      BIGINT NOT NULL,
//	    annotate_ms   BIGINT NOT NULL,
//	    artifact_uri  TEXT,
//	    created_at    TIMESTAMPTZ DEFAULT NOW()
//	);
func (s *Store) SaveAnalysis(ctx context.Context, rec analysis.Record) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(id, url, action, status_code, sample_hash, sentences, fetched_at, fetch_ms, annotate_ms, artifact_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, s.table)

	_, err := s.pool.Exec(ctx, query,
		rec.ID,
		rec.URL,
		string(rec.Action),
		rec.StatusCode,
		rec.SampleHash,
		rec.Sentences,
		rec.FetchedAt,
		rec.FetchTime.Milliseconds(),
		rec.Annotate.Milliseconds(),
		rec.ArtifactURI,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
