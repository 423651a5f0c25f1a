package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func countVersions(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n); err != nil {
		t.Fatalf("count schema_version: %v", err)
	}
	return n
}

func TestOpen_FreshInstall(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if got := countVersions(t, conn); got != len(migrations) {
		t.Errorf("schema_version rows = %d, want %d", got, len(migrations))
	}
	if _, err := conn.Exec("INSERT INTO action_journal (id, timestamp, operator, request_id, kind, outcome) VALUES ('a', CURRENT_TIMESTAMP, 'op', 'r', 'status_write', 'ok')"); err != nil {
		t.Errorf("journal insert failed: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	conn, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()

	conn, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer conn.Close()
	if got := countVersions(t, conn); got != len(migrations) {
		t.Errorf("schema_version rows = %d after reopen", got)
	}
}

func TestRunMigrations_UpgradesUnversionedTables(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	tx, err := conn.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if err := migrationV1(tx); err != nil {
		t.Fatalf("migrationV1: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	if _, err := conn.Exec("INSERT INTO action_journal (id, timestamp, operator, request_id, kind, outcome) VALUES ('b', CURRENT_TIMESTAMP, 'op', 'r', 'refetch', 'failed')"); err != nil {
		t.Errorf("upgraded journal lacks columns: %v", err)
	}
	if got := countVersions(t, conn); got != len(migrations) {
		t.Errorf("schema_version rows = %d, want %d", got, len(migrations))
	}
}
