// Package sqlstore persists configuration values, the random state among
// them, in PostgreSQL or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"symrand/domain/core"
	"symrand/internal"
	"symrand/internal/migration"
	"symrand/ports"
)

const (
	selectValue = `SELECT value FROM random_config WHERE session_id = ? AND name = ?`
	upsertValue = `
		INSERT INTO random_config (session_id, name, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, name)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteSession = `DELETE FROM random_config WHERE session_id = ?`
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

var _ ports.ConfigRepository = (*Repository)(nil)

// Repository implements ports.ConfigRepository over a sqlx database.
type Repository struct {
	db     *sqlx.DB
	logger *internal.Logger
}

// New wraps an open database whose schema is already migrated.
func New(db *sqlx.DB, logger *internal.Logger) *Repository {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	return &Repository{db: db, logger: logger.Named("sqlstore")}
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string, logger *internal.Logger) (*Repository, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return open(ctx, db, logger)
}

// OpenSQLite opens the database file at path, ":memory:" for a private
// in-memory database, and migrates the schema.
func OpenSQLite(ctx context.Context, path string, logger *internal.Logger) (*Repository, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Every connection to :memory: is a new database.
	db.SetMaxOpenConns(1)
	return open(ctx, db, logger)
}

func open(ctx context.Context, db *sqlx.DB, logger *internal.Logger) (*Repository, error) {
	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	r := New(db, logger)
	r.logger.Info("%s store ready (schema %s)", db.DriverName(), runner.Version())
	return r, nil
}

// Scoped returns the store of one session.
func (r *Repository) Scoped(sessionID core.SessionID) ports.ConfigStore {
	return &Store{repo: r, session: sessionID.String()}
}

// DeleteSession removes every value stored for a session.
func (r *Repository) DeleteSession(ctx context.Context, sessionID core.SessionID) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(deleteSession), sessionID.String())
	return err
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Store holds the values of one session as decimal text.
type Store struct {
	repo    *Repository
	session string
}

func (s *Store) GetConfigValue(ctx context.Context, name string) (*big.Int, bool, error) {
	var text string
	err := s.repo.db.GetContext(ctx, &text, s.repo.db.Rebind(selectValue), s.session, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}

	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s holds %q", core.ErrInvalidState, name, truncate(text, 32))
	}
	return v, true, nil
}

func (s *Store) SetConfigValue(ctx context.Context, name string, value *big.Int) error {
	_, err := s.repo.db.ExecContext(ctx, s.repo.db.Rebind(upsertValue),
		s.session, name, value.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.repo.logger.Trace("stored %s for session %s", name, s.session)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
