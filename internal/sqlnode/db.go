package sqlnode

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var defaultSchemaSQL string

// Open creates or opens a SQLite database at path, applying the
// pragmas a single-writer change-source workload needs.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - a 5-second busy timeout for lock contention
//   - foreign key enforcement
//
// Open is idempotent and safe to call multiple times against the same
// path. If applyDefaultSchema is true, the embedded sample schema is
// applied; callers pointing TableSource at a pre-existing table should
// pass false and migrate their own schema.
func Open(path string, applyDefaultSchema bool) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlnode: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlnode: connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY errors under our own polling load.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlnode: apply pragmas: %w", err)
	}

	if applyDefaultSchema {
		if _, err := db.Exec(defaultSchemaSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlnode: apply schema: %w", err)
		}
	}

	return db, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}
