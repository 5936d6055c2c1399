package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by every operation on a closed Database
var ErrClosed = errors.New("database connection is closed")

// Database is a connection to a wadex lump catalog stored in SQLite
type Database struct {
	db   *sql.DB
	path string
}

// DatabaseOptions configures how the catalog file is opened
type DatabaseOptions struct {
	Path string

	// ReadOnly opens an existing catalog without creating it
	ReadOnly bool

	WALMode     bool
	ForeignKeys bool
	BusyTimeout time.Duration
}

// DefaultDatabaseOptions returns the options used when building a catalog
func DefaultDatabaseOptions(path string) *DatabaseOptions {
	return &DatabaseOptions{
		Path:        path,
		WALMode:     true,
		ForeignKeys: true,
		BusyTimeout: 30 * time.Second,
	}
}

// ReadOnlyDatabaseOptions returns the options used by query commands
func ReadOnlyDatabaseOptions(path string) *DatabaseOptions {
	options := DefaultDatabaseOptions(path)
	options.ReadOnly = true
	options.WALMode = false
	return options
}

// NewDatabase opens the catalog described by options, creating the file and
// its directory unless ReadOnly is set
func NewDatabase(options *DatabaseOptions) (*Database, error) {
	switch {
	case options == nil:
		return nil, fmt.Errorf("database options cannot be nil")
	case options.Path == "":
		return nil, fmt.Errorf("database path cannot be empty")
	}

	if options.ReadOnly {
		if _, err := os.Stat(options.Path); err != nil {
			return nil, fmt.Errorf("opening database %s: %w", options.Path, err)
		}
	} else if dir := filepath.Dir(options.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", buildConnectionString(options))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", options.Path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", options.Path, err)
	}

	return &Database{db: db, path: options.Path}, nil
}

// Path returns the database file path
func (d *Database) Path() string {
	return d.path
}

// Close closes the connection. Closing twice is a no-op.
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	db := d.db
	d.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	return nil
}

func (d *Database) conn() (*sql.DB, error) {
	if d.db == nil {
		return nil, ErrClosed
	}
	return d.db, nil
}

// BeginTx starts a new transaction
func (d *Database) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	db, err := d.conn()
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}

// Exec runs a statement that returns no rows
func (d *Database) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db, err := d.conn()
	if err != nil {
		return nil, err
	}
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing statement: %w", err)
	}
	return result, nil
}

// Query runs a query that returns rows
func (d *Database) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db, err := d.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

// QueryScalar runs a query returning a single value and scans it into dest
func (d *Database) QueryScalar(ctx context.Context, dest any, query string, args ...any) error {
	db, err := d.conn()
	if err != nil {
		return err
	}
	if err := db.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
		return fmt.Errorf("scanning query result: %w", err)
	}
	return nil
}

// HasUserTables reports whether the catalog tables already exist, ignoring
// sqlite internals and underscore-prefixed bookkeeping tables
func (d *Database) HasUserTables(ctx context.Context) (bool, error) {
	var count int
	err := d.QueryScalar(ctx, &count,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND substr(name, 1, 1) <> '_'`)
	if err != nil {
		return false, fmt.Errorf("checking for user tables: %w", err)
	}
	return count > 0, nil
}

// buildConnectionString encodes options as go-sqlite3 DSN parameters
func buildConnectionString(options *DatabaseOptions) string {
	params := []string{}
	if options.ReadOnly {
		params = append(params, "mode=ro")
	}
	if options.WALMode {
		params = append(params, "_journal_mode=WAL")
	}
	if options.ForeignKeys {
		params = append(params, "_foreign_keys=on")
	}
	if options.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", options.BusyTimeout.Milliseconds()))
	}
	params = append(params, "_synchronous=NORMAL")

	return "file:" + options.Path + "?" + strings.Join(params, "&")
}
