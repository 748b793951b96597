// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/barter/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// An in-memory database lives on a single connection, so the pool is pinned to one.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
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

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	if username == "" {
		username = "alice"
	}
	var id int64
	err := db.QueryRow(
		"INSERT INTO users (username, full_name, avatar_ref, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		username, "Test "+username, "avatars/"+username+".png", time.Now().UnixNano(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedOffer inserts a test offer and returns its ID.
func seedOffer(t *testing.T, db *sql.DB, ownerID int64, title string, active bool) int64 {
	t.Helper()
	if title == "" {
		title = "Test Offer"
	}
	activeInt := 0
	if active {
		activeInt = 1
	}
	var id int64
	err := db.QueryRow(
		"INSERT INTO offers (owner_id, title, is_active, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		ownerID, title, activeInt, time.Now().UnixNano(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed offer: %v", err)
	}
	return id
}

// seedMessage inserts a message row directly with an explicit timestamp.
func seedMessage(t *testing.T, db *sql.DB, sender, recipient int64, body string, read bool, createdAt time.Time) int64 {
	t.Helper()
	readInt := 0
	if read {
		readInt = 1
	}
	var id int64
	err := db.QueryRow(
		"INSERT INTO messages (sender_id, recipient_id, body, is_read, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id",
		sender, recipient, body, readInt, createdAt.UnixNano(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return id
}
