package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
)

// SetPath selects the database file used by GetDB. It has no effect once
// the connection is open.
func SetPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	dbPath = path
}

// GetDB returns the database connection, initializing if needed
func GetDB() (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if db != nil {
		return db, nil
	}

	path, err := resolvePath()
	if err != nil {
		return nil, err
	}
	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	db = conn
	return db, nil
}

// Open opens the database at path, creating the parent directory and
// bringing the schema up to date.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer: the poller and write effects share the connection.
	conn.SetMaxOpenConns(1)

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return conn, nil
}

// Close closes the database connection
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// GetDBPath returns the path to the database file
func GetDBPath() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	return resolvePath()
}

func resolvePath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".board", "cache.db"), nil
}
