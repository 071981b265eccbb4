// Package storage persists loaded projects and the opt-in inference
// cache in a per-project SQLite database.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Sevistuo/cquery/internal/config"
	"github.com/Sevistuo/cquery/internal/logging"
	"github.com/Sevistuo/cquery/internal/project"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	position INTEGER PRIMARY KEY,
	filename TEXT NOT NULL UNIQUE,
	args     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS include_dirs (
	kind TEXT NOT NULL CHECK (kind IN ('quote', 'angle')),
	dir  TEXT NOT NULL,
	PRIMARY KEY (kind, dir)
);

CREATE TABLE IF NOT EXISTS inferred_args (
	filename   TEXT PRIMARY KEY,
	args       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

// DB is a project database connection.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	path   string
}

// Open opens or creates the project database at
// <root>/.cquery-data/cquery.db.
func Open(root string, logger *logging.Logger) (*DB, error) {
	dir := filepath.Join(root, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, "cquery.db")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	logger.Debug("opened project database", logging.Fields{"path": path})
	return &DB{conn: conn, logger: logger, path: path}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

func (db *DB) withTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("transaction rollback failed",
				logging.Fields{"error": err.Error(), "rollbackError": rbErr.Error()})
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveProject replaces the stored entries and include directories with
// the given project's. The inference cache is cleared in the same
// transaction: cached guesses are only valid against the load they were
// computed from.
func (db *DB) SaveProject(p *project.Project) error {
	return db.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"entries", "include_dirs", "inferred_args"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return err
			}
		}

		insertEntry, err := tx.Prepare("INSERT INTO entries (position, filename, args) VALUES (?, ?, ?)")
		if err != nil {
			return err
		}
		defer insertEntry.Close()
		for i, e := range p.Entries {
			args, err := json.Marshal(e.Args)
			if err != nil {
				return err
			}
			if _, err := insertEntry.Exec(i, e.Filename, string(args)); err != nil {
				return err
			}
		}

		insertDir, err := tx.Prepare("INSERT INTO include_dirs (kind, dir) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer insertDir.Close()
		for _, dir := range p.QuoteIncludeDirectories {
			if _, err := insertDir.Exec("quote", dir); err != nil {
				return err
			}
		}
		for _, dir := range p.AngleIncludeDirectories {
			if _, err := insertDir.Exec("angle", dir); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadEntries reads the stored entries back in load order.
func (db *DB) LoadEntries() ([]project.Entry, error) {
	rows, err := db.conn.Query("SELECT filename, args FROM entries ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []project.Entry
	for rows.Next() {
		var e project.Entry
		var args string
		if err := rows.Scan(&e.Filename, &args); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(args), &e.Args); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CachedInference looks up a previously inferred argument list.
func (db *DB) CachedInference(filename string) ([]string, bool, error) {
	var raw string
	err := db.conn.QueryRow("SELECT args FROM inferred_args WHERE filename = ?", filename).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var args []string
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, false, err
	}
	return args, true, nil
}

// PutInference records an inferred argument list for filename.
func (db *DB) PutInference(filename string, args []string) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO inferred_args (filename, args, created_at) VALUES (?, ?, ?)",
		filename, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}
