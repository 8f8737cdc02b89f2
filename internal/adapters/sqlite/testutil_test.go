// Package sqlite_test contains integration tests for the SQLite adapters.
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

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/ninegrid/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each new connection to :memory: is a new database.
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedValue inserts a raw key-value row for profile.
func seedValue(t *testing.T, db *sql.DB, profile, key, value string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO kv_store (profile, key, value) VALUES (?, ?, ?)", profile, key, value)
	if err != nil {
		t.Fatalf("failed to seed value: %v", err)
	}
}
