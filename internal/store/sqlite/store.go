// Package sqlite provides a SQLite-backed slot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store holds named slots in one SQLite file.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Slot returns the slot stored under name.
func (s *Store) Slot(name string) (*Slot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("sqlite slot: empty name")
	}
	return &Slot{store: s, key: name}, nil
}

// UpdatedAt reports when the slot was last written. ok is false if never.
func (s *Store) UpdatedAt(ctx context.Context, name string) (time.Time, bool, error) {
	var millis int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT updated_at FROM slots WHERE key = ?`, name).Scan(&millis)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get slot %s updated_at: %w", name, err)
	}
	return time.UnixMilli(millis).UTC(), true, nil
}

// Slot is one row of the slots table.
type Slot struct {
	store *Store
	key   string
}

func (sl *Slot) Read(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var value string
	err := sl.store.sqlDB.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, sl.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", sl.key, err)
	}
	return value, true, nil
}

func (sl *Slot) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := sl.store.sqlDB.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		sl.key, value, sl.store.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", sl.key, err)
	}
	return nil
}

func (sl *Slot) Key() string     { return sl.key }
func (sl *Slot) Backend() string { return "sqlite" }

// Ping checks the database handle.
func (sl *Slot) Ping(ctx context.Context) error {
	return sl.store.sqlDB.PingContext(ctx)
}

// UpdatedAt reports when this slot was last written.
func (sl *Slot) UpdatedAt(ctx context.Context) (time.Time, bool, error) {
	return sl.store.UpdatedAt(ctx, sl.key)
}
