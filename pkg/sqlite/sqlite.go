// Package sqlite opens the planner's SQLite database and keeps its schema current.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// TimeLayout is how timestamps are stored in TEXT columns.
const TimeLayout = time.RFC3339Nano

// Open opens (creating if needed) the database at path and runs migrations.
// ":memory:" opens a private in-memory database.
func Open(path string) (*sql.DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// One writer; also keeps a ":memory:" database on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		subject TEXT NOT NULL,
		due_date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		fingerprint TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plans (
		date TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		reasoning TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sync_records (
		assignment_id TEXT PRIMARY KEY,
		tracker_task_id TEXT NOT NULL DEFAULT '',
		sync_key TEXT NOT NULL,
		last_synced_at TEXT NOT NULL,
		sync_status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_due_date ON assignments(due_date);
	CREATE INDEX IF NOT EXISTS idx_sync_records_status ON sync_records(sync_status);
	`

	_, err := db.Exec(schema)
	return err
}
