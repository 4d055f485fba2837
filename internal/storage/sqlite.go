// Package storage keeps the briefing archive in SQLite.
//
// Every completed briefing run is stored with its ranked articles, and the
// articles are indexed with FTS5 so past headlines stay searchable after the
// live briefing has moved on.
package storage

import (
	"cmp"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// memoryPath opens a private in-memory archive. It lives only as long as its
// one connection.
const memoryPath = ":memory:"

// Store is the briefing archive.
type Store struct {
	db *sql.DB
}

// NewStore wraps a database that already carries the archive schema.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens the archive at path and brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db), nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// OpenDatabase opens the SQLite file at path, creating it and its directory
// when missing. Runs write the briefing row and its articles in a single
// transaction while readers search the archive, so the journal is WAL and
// deleting a briefing cascades to its articles.
//
// The pool holds one connection: SQLite allows a single writer, and an
// in-memory archive exists only on the connection that created it.
func OpenDatabase(path string) (*sql.DB, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("opening archive %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening archive %q: %w", path, err)
	}

	slog.Info("briefing archive opened", "path", path)
	return db, nil
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

type migration struct {
	version int
	file    string
}

// loadMigrations lists the embedded NNN_name.sql files in version order.
func loadMigrations() ([]migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	out := make([]migration, 0, len(names))
	for _, name := range names {
		base := filepath.Base(name)
		prefix, _, ok := strings.Cut(base, "_")
		v, err := strconv.Atoi(prefix)
		if !ok || err != nil || v <= 0 {
			return nil, fmt.Errorf("migration %q: name must start with a positive version", base)
		}
		out = append(out, migration{version: v, file: name})
	}
	slices.SortFunc(out, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	return out, nil
}

// RunMigrations applies the archive schema migrations that db has not seen
// yet, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("running migrations: %s: %w", filepath.Base(m.file), err)
		}
		slog.Info("archive schema migrated", "version", m.version)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	body, err := migrationFiles.ReadFile(m.file)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(body)); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return err
	}
	return tx.Commit()
}

// parseTime reads a created_at column. Archive rows use timeLayout; any
// fractional part is optional. Unparseable values give the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
