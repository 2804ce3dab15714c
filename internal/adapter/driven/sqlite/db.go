// Package sqlite persists profiles and audit events in a single SQLite file
// opened in WAL mode for crash-safe durability.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var (
	// ErrStoreInit is returned when the store file, its parent directory, or
	// its initial schema cannot be created.
	ErrStoreInit = errors.New("store init failed")

	// ErrStoreOpen is returned when an existing file is not a usable store.
	ErrStoreOpen = errors.New("store open failed")
)

// DB provides dual reader/writer connections to the profile store with WAL
// mode enabled. The writer is limited to a single connection to avoid
// "database is locked" errors; the reader pool allows up to 4 concurrent readers.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// Open ensures the store exists at dbPath and returns an open handle to it.
// On first run it creates the parent directory, the database file, and the
// schema; on reopen it only verifies the file is a valid store. Both paths
// configure WAL journaling, a busy timeout, and synchronous NORMAL.
func Open(ctx context.Context, dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("%w: create store directory %q: %v", ErrStoreInit, filepath.Dir(dbPath), err)
	}

	firstRun := false
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		firstRun = true
	}

	// Schema and lifecycle faults get distinct sentinels: a fresh store that
	// cannot be built is an init failure, an existing file that cannot be
	// read back is an open failure (corrupt or incompatible schema).
	fault := ErrStoreOpen
	if firstRun {
		fault = ErrStoreInit
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath,
	)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open writer: %v", fault, err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.PingContext(ctx); err != nil {
		writer.Close()
		return nil, fmt.Errorf("%w: ping writer: %v", fault, err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("%w: open reader: %v", fault, err)
	}
	reader.SetMaxOpenConns(4)

	if err := reader.PingContext(ctx); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("%w: ping reader: %v", fault, err)
	}

	db := &DB{
		Writer: writer,
		Reader: reader,
		path:   dbPath,
	}

	if err := runMigrations(db.Writer); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", fault, err)
	}

	return db, nil
}

// Path returns the database file location.
func (db *DB) Path() string {
	return db.path
}

// Close closes both reader and writer connections. Returns the first error encountered.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
