package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/barter/internal/logger"
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
		Name:    "create_user_and_offer_directory",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "create_messages_table",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_conversation_pair_index",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_unread_and_timeline_indexes",
		Up:      migrationV4,
	},
}

// LatestVersion returns the version a fully migrated database is at.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration version (0 when none).
func CurrentVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Log.Info("running migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name),
		)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the local user and offer directory
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL DEFAULT '',
			avatar_ref TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS offers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
			created_at INTEGER NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_offers_owner ON offers(owner_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create directory tables: %w", err)
	}
	return nil
}

// migrationV2 creates the messages table
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender_id INTEGER NOT NULL,
			recipient_id INTEGER NOT NULL,
			offer_id INTEGER,
			body TEXT NOT NULL CHECK(length(trim(body)) > 0),
			is_read INTEGER NOT NULL DEFAULT 0 CHECK(is_read IN (0, 1)),
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}
	return nil
}

// migrationV3 indexes messages by normalized participant pair so a
// conversation is one index range regardless of direction
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_pair
			ON messages(min(sender_id, recipient_id), max(sender_id, recipient_id), created_at, id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create pair index: %w", err)
	}
	return nil
}

// migrationV4 adds the indexes behind unread counts and dialog aggregation
func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_recipient_unread ON messages(recipient_id, is_read, sender_id);
		CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id);
		CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
