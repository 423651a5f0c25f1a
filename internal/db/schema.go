package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of declaring their own tables, so a repository
// that references a missing column fails with "no such column" right away.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Last merged snapshots, newest per session used for offline rendering
CREATE TABLE IF NOT EXISTS snapshot_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	sequence INTEGER NOT NULL,
	payload TEXT NOT NULL,
	saved_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshot_cache_session ON snapshot_cache(session_id, saved_at);

-- Writes sent to the backend
CREATE TABLE IF NOT EXISTS action_journal (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL,
	operator TEXT,
	request_id TEXT,
	kind TEXT NOT NULL,
	squad_id INTEGER,
	mission_id INTEGER,
	detail TEXT,
	outcome TEXT NOT NULL CHECK(outcome IN ('ok', 'failed')),
	error TEXT
);

CREATE INDEX IF NOT EXISTS idx_action_journal_timestamp ON action_journal(timestamp);
CREATE INDEX IF NOT EXISTS idx_action_journal_kind ON action_journal(kind);
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var oldTableCount int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('snapshot_cache', 'action_journal')").Scan(&oldTableCount)
		if err != nil {
			return err
		}
		if oldTableCount > 0 {
			// Tables from before versioning - upgrade them
			return RunMigrations(db)
		}

		// Completely fresh install - create modern schema directly and mark
		// every migration as applied
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		if err := createVersionTable(db); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations(db)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
