// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup goes through setupTestDB, which loads db.GetSchemaSQL() so
// tests run against the authoritative schema.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hexmaker/internal/db"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun inserts a running run and returns its ID.
func seedRun(t *testing.T, repo secondary.HistoryRepository, id, kind string) string {
	t.Helper()
	if kind == "" {
		kind = "entity"
	}

	err := repo.CreateRun(context.Background(), &secondary.RunRecord{
		ID:         id,
		Kind:       kind,
		Path:       "Sales/Order",
		Name:       "Order",
		Properties: "total:float(0,)",
	})
	if err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return id
}
