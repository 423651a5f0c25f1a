package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_snapshot_cache_and_journal",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_request_id_and_operator_to_journal",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_journal_indexes",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the first cache and journal tables
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot_cache (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			payload TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshot_cache_session ON snapshot_cache(session_id, saved_at);

		CREATE TABLE IF NOT EXISTS action_journal (
			id TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			kind TEXT NOT NULL,
			squad_id INTEGER,
			mission_id INTEGER,
			detail TEXT,
			outcome TEXT NOT NULL CHECK(outcome IN ('ok', 'failed')),
			error TEXT
		);
	`)
	return err
}

// migrationV2 records who sent a write and under which request id
func migrationV2(tx *sql.Tx) error {
	for _, col := range []string{"operator", "request_id"} {
		exists, err := columnExists(tx, "action_journal", col)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE action_journal ADD COLUMN %s TEXT", col)); err != nil {
			return err
		}
	}
	return nil
}

// migrationV3 indexes the journal for listing
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_action_journal_timestamp ON action_journal(timestamp);
		CREATE INDEX IF NOT EXISTS idx_action_journal_kind ON action_journal(kind);
	`)
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
