// Package sqlite implements container persistence on SQLite using the
// pure-Go ncruces driver.
//
// Usage is a fixed startup sequence: NewDB opens the pool, Migrate provisions
// the schema, and ContainerRepository hands out the repository. Migrate is
// never run implicitly.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/hyperstore/internal/log"
)

// MemoryPath opens a private in-memory database. The pool is limited to a
// single connection so every statement sees the same database.
const MemoryPath = ":memory:"

const (
	defaultMaxOpenConns = 10
	defaultBusyTimeout  = 5 * time.Second
)

type options struct {
	maxOpenConns int
	busyTimeout  time.Duration
	backup       bool
}

// Option configures NewDB.
type Option func(*options)

// WithMaxOpenConns caps the connection pool. Values below 1 are ignored.
func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

// WithBusyTimeout sets how long a connection waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// WithBackup controls the pre-migration copy of an existing database file
// to <path>.bak. Enabled by default.
func WithBackup(enabled bool) Option {
	return func(o *options) {
		o.backup = enabled
	}
}

// DB owns the connection pool shared by every repository.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if needed) the database at path.
//
// The parent directory is created with 0700 permissions. When the file
// already exists it is copied to path+".bak" first. Every pooled connection
// runs with WAL journaling, foreign keys and a busy timeout.
func NewDB(path string, opts ...Option) (*DB, error) {
	o := options{
		maxOpenConns: defaultMaxOpenConns,
		busyTimeout:  defaultBusyTimeout,
		backup:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		if o.backup {
			if err := backupFile(path); err != nil {
				return nil, err
			}
		}
	}

	log.Debug(log.CatDB, "Opening database", "path", path, "maxOpenConns", o.maxOpenConns)
	conn, err := sql.Open("sqlite3", dataSourceName(path, o.busyTimeout, memory))
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if memory {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(o.maxOpenConns)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", path)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info(log.CatDB, "Connected to database", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// dataSourceName builds a URI filename with per-connection pragmas.
func dataSourceName(path string, busyTimeout time.Duration, memory bool) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	if !memory {
		q.Add("_pragma", "journal_mode(wal)")
	}
	return "file:" + path + "?" + q.Encode()
}

// backupFile copies an existing database to path+".bak". A missing file is
// not an error.
func backupFile(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path comes from config
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	backupPath := path + ".bak"
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec // G304: derived from config path
	if err != nil {
		return fmt.Errorf("failed to create database backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write database backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to write database backup: %w", err)
	}

	log.Debug(log.CatDB, "Backed up database", "path", backupPath)
	return nil
}

// Path returns the path the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// Connection returns the underlying pool.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Close closes the pool. Repositories obtained from db become unusable.
func (db *DB) Close() error {
	return db.conn.Close()
}
