package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates an empty database with a small marketplace:
// three users, two offers (one unlisted) and a few conversations.
func SeedFixtures(database *sql.DB) error {
	var existing int
	if err := database.QueryRow("SELECT COUNT(*) FROM users").Scan(&existing); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("seed: database already has %d users", existing)
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	start := time.Now().Add(-2 * time.Hour)
	at := func(minutes int) int64 {
		return start.Add(time.Duration(minutes) * time.Minute).UnixNano()
	}

	users := []struct {
		id                 int64
		username, fullName string
	}{
		{1, "alice", "Alice Moreau"},
		{2, "bob", "Bob Lindqvist"},
		{3, "carol", "Carol Okafor"},
	}
	for _, u := range users {
		if _, err := tx.Exec(
			"INSERT INTO users (id, username, full_name, avatar_ref, created_at) VALUES (?, ?, ?, '', ?)",
			u.id, u.username, u.fullName, at(0),
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	offers := []struct {
		id, ownerID int64
		title       string
		active      int
	}{
		{42, 2, "Road bike, 54cm frame", 1},
		{43, 3, "Acoustic guitar", 0},
	}
	for _, o := range offers {
		if _, err := tx.Exec(
			"INSERT INTO offers (id, owner_id, title, is_active, created_at) VALUES (?, ?, ?, ?, ?)",
			o.id, o.ownerID, o.title, o.active, at(1),
		); err != nil {
			return fmt.Errorf("seed offers: %w", err)
		}
	}

	messages := []struct {
		sender, recipient int64
		offerID           sql.NullInt64
		body              string
		read              int
		minute            int
	}{
		{1, 2, sql.NullInt64{Int64: 42, Valid: true}, "Interested in your bike", 1, 10},
		{2, 1, sql.NullInt64{}, "Sure, what would you swap for it?", 1, 12},
		{1, 2, sql.NullInt64{}, "I have a camping tent and a stove", 1, 15},
		{2, 1, sql.NullInt64{}, "Deal if the tent is a 3-person one", 0, 20},
		{3, 1, sql.NullInt64{Int64: 43, Valid: true}, "Still looking for a guitar?", 0, 30},
		{3, 2, sql.NullInt64{}, "Hi Bob, is the bike still available?", 0, 40},
	}
	for _, m := range messages {
		if _, err := tx.Exec(
			"INSERT INTO messages (sender_id, recipient_id, offer_id, body, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			m.sender, m.recipient, m.offerID, m.body, m.read, at(m.minute),
		); err != nil {
			return fmt.Errorf("seed messages: %w", err)
		}
	}

	return tx.Commit()
}
