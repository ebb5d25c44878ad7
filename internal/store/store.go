// Package store persists finished runs to Postgres so view documents
// can be compared across extracts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kredmint/bureauscrub/pkg/models"
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store is a Postgres-backed run sink.
type Store struct {
	db     *sql.DB
	schema string
}

// Open connects to Postgres and prepares the run tables. schema must be
// a plain lowercase identifier; it is interpolated into DDL.
func Open(ctx context.Context, url, schema string) (*Store, error) {
	if !identPattern.MatchString(schema) {
		return nil, fmt.Errorf("invalid schema name %q", schema)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db, schema: schema}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.scrub_runs (
			id UUID PRIMARY KEY,
			bureau_date DATE NOT NULL,
			total_customers INTEGER NOT NULL,
			serviceable_base INTEGER NOT NULL,
			run_tag TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.scrub_views (
			id UUID PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES %s.scrub_runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			payload JSONB NOT NULL,
			UNIQUE (run_id, name)
		)`, s.schema, s.schema),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveRun writes the run header and every view document in one
// transaction and returns the run id.
func (s *Store) SaveRun(ctx context.Context, vs *models.ViewSet, bureauDate time.Time, totalCustomers, serviceableBase int, tag string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.New()
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s.scrub_runs (id, bureau_date, total_customers, serviceable_base, run_tag)
			VALUES ($1, $2, $3, $4, $5)`, s.schema),
		runID, bureauDate, totalCustomers, serviceableBase, tag,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	insertView := fmt.Sprintf(`INSERT INTO %s.scrub_views (id, run_id, name, payload)
		VALUES ($1, $2, $3, $4)`, s.schema)
	for _, nv := range vs.Named() {
		payload, err := json.Marshal(nv.Doc)
		if err != nil {
			return "", fmt.Errorf("marshal view %s: %w", nv.Name, err)
		}
		if _, err := tx.ExecContext(ctx, insertView, uuid.New(), runID, nv.Name, payload); err != nil {
			return "", fmt.Errorf("insert view %s: %w", nv.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID.String(), nil
}
