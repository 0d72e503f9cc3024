// Package store persists rule documents in a local SQLite library.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"rulesmith-hq/forge/pkg/forge/codec"
	forgeErrors "rulesmith-hq/forge/pkg/forge/errors"
	"rulesmith-hq/forge/pkg/forge/rule"
	"rulesmith-hq/forge/pkg/forge/validator"
	"rulesmith-hq/forge/pkg/telemetry/metrics"
)

// Config contains configuration for the SQLite rule store.
type Config struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:         "data/rules.db",
		MaxOpenConns: 10,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS rules (
	id          TEXT PRIMARY KEY,
	slug        TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	document    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rules_name ON rules(name);
`

// Summary is a listing row: rule metadata without the document body.
type Summary struct {
	ID          string
	Slug        string
	Name        string
	Description string
	UpdatedAt   string
}

// SQLiteStore keeps rule documents in a SQLite database, one row per
// rule, with the full JSON document alongside indexed metadata.
type SQLiteStore struct {
	db      *sql.DB
	config  *Config
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Open opens (creating if needed) a rule store at the configured path.
// The metrics collector may be nil.
func Open(config *Config, collector *metrics.Collector) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultConfig()
	}

	logger := slog.Default().With("component", "forge.store.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "opening store %s: %v", config.Path, err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStore{db: db, config: config, logger: logger, metrics: collector}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("rule store opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return forgeErrors.New(forgeErrors.KindIO, "enabling WAL mode: %v", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return forgeErrors.New(forgeErrors.KindIO, "setting busy timeout: %v", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return forgeErrors.New(forgeErrors.KindIO, "creating schema: %v", err)
	}
	return nil
}

// Save validates the rule and upserts it by ID. Invalid rules are never
// stored; the validation report comes back instead.
func (s *SQLiteStore) Save(ctx context.Context, r *rule.Rule) error {
	if err := validator.Validate(r); err != nil {
		return err
	}

	data, err := codec.ToJSON(r)
	if err != nil {
		return forgeErrors.New(forgeErrors.KindIO, "encoding rule %q: %v", r.Name, err)
	}

	query := `
		INSERT INTO rules (id, slug, name, description, created_at, updated_at, document)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at,
			document = excluded.document
	`
	if _, err := s.db.ExecContext(ctx, query,
		r.ID, r.Slug, r.Name, r.Description, r.CreatedAt, r.UpdatedAt, string(data)); err != nil {
		return forgeErrors.New(forgeErrors.KindIO, "saving rule %q: %v", r.Name, err)
	}

	s.metrics.RecordStoreOperation("save")
	s.logger.Debug("rule saved", "id", r.ID, "slug", r.Slug, "name", r.Name)
	return nil
}

// Get loads a rule by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*rule.Rule, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetBySlug loads a rule by its slug.
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (*rule.Rule, error) {
	return s.getWhere(ctx, "slug = ?", slug)
}

func (s *SQLiteStore) getWhere(ctx context.Context, where string, arg any) (*rule.Rule, error) {
	var document string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM rules WHERE "+where, arg).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, forgeErrors.New(forgeErrors.KindIO, "rule not found: %v", arg)
	}
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "loading rule: %v", err)
	}
	s.metrics.RecordStoreOperation("get")
	return codec.FromJSON([]byte(document))
}

// List returns summaries of all stored rules, most recently updated
// first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, slug, name, description, updated_at FROM rules ORDER BY updated_at DESC")
	if err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "listing rules: %v", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Slug, &sum.Name, &sum.Description, &sum.UpdatedAt); err != nil {
			return nil, forgeErrors.New(forgeErrors.KindIO, "scanning rule row: %v", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, forgeErrors.New(forgeErrors.KindIO, "listing rules: %v", err)
	}
	s.metrics.RecordStoreOperation("list")
	return out, nil
}

// Delete removes a rule by ID. It reports whether a row was deleted.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rules WHERE id = ?", id)
	if err != nil {
		return false, forgeErrors.New(forgeErrors.KindIO, "deleting rule %s: %v", id, err)
	}
	n, _ := res.RowsAffected()
	s.metrics.RecordStoreOperation("delete")
	if n > 0 {
		s.logger.Debug("rule deleted", "id", id)
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
