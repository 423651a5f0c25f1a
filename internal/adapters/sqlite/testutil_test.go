// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// :memory: is per connection
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// sampleSnapshot returns a small board with one squad and one mission.
func sampleSnapshot(sessionID string) *snapshot.Snapshot {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return &snapshot.Snapshot{
		Config: &snapshot.Config{
			SessionID: sessionID,
			Location:  "Donauinselfest",
			StartTime: start,
			IsActive:  true,
		},
		Squads: []snapshot.Squad{
			{ID: 1, Name: "Trupp 1", Type: status.Trupp, CurrentStatus: status.Ready, LastStatusChange: start},
		},
		Missions: []snapshot.Mission{
			{ID: 7, MissionNumber: "1", Status: snapshot.MissionRunning, Location: "Bühne", Reason: "Kollaps", SquadIDs: []int{1}},
		},
	}
}
