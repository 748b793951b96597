package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/secondary"
)

const messageColumns = "id, sender_id, recipient_id, offer_id, body, is_read, created_at"

// pairFilter matches both directions of a conversation and uses idx_messages_pair.
const pairFilter = "min(sender_id, recipient_id) = ? AND max(sender_id, recipient_id) = ?"

// markReadBatch keeps each UPDATE well under SQLite's bound-variable limit.
const markReadBatch = 500

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db, now: time.Now}
}

// Create persists a new message. created_at is clamped in the same statement
// so the stored timeline never goes backwards when the clock does.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	var offerID any
	if message.OfferID > 0 {
		offerID = message.OfferID
	}

	createdAt := message.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	var id, stored int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, recipient_id, offer_id, body, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, max(?, COALESCE((SELECT MAX(created_at) FROM messages), 0)))
		RETURNING id, created_at`,
		message.SenderID, message.RecipientID, offerID, message.Body, createdAt.UnixNano(),
	).Scan(&id, &stored)
	if err != nil {
		return storeError("create message", err)
	}

	message.ID = id
	message.Read = false
	message.CreatedAt = time.Unix(0, stored).UTC()

	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ?", id)

	record, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &messaging.NotFoundError{Entity: "message", ID: id}
	}
	if err != nil {
		return nil, storeError("get message", err)
	}

	return record, nil
}

// ListConversation returns one window of the conversation, oldest first.
func (r *MessageRepository) ListConversation(ctx context.Context, pair messaging.Pair, limit, offset int) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE "+pairFilter+
			" ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?",
		pair.Low, pair.High, limit, offset,
	)
	if err != nil {
		return nil, storeError("list conversation", err)
	}

	return collectMessages(rows, "list conversation")
}

// ListConversationAfter returns the conversation tail past afterID, oldest first.
func (r *MessageRepository) ListConversationAfter(ctx context.Context, pair messaging.Pair, afterID int64) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE "+pairFilter+
			" AND id > ? ORDER BY created_at ASC, id ASC",
		pair.Low, pair.High, afterID,
	)
	if err != nil {
		return nil, storeError("list new messages", err)
	}

	return collectMessages(rows, "list new messages")
}

// CountConversation returns the number of messages between the pair.
func (r *MessageRepository) CountConversation(ctx context.Context, pair messaging.Pair) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE "+pairFilter,
		pair.Low, pair.High,
	).Scan(&count)
	if err != nil {
		return 0, storeError("count conversation", err)
	}

	return count, nil
}

// MarkRead flips is_read for the messages in ids addressed to recipientID.
// Messages addressed to anyone else, already read, or missing are left alone.
func (r *MessageRepository) MarkRead(ctx context.Context, ids []int64, recipientID int64) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeError("mark read", err)
	}
	defer tx.Rollback()

	changed := 0
	for start := 0; start < len(ids); start += markReadBatch {
		end := min(start+markReadBatch, len(ids))
		batch := ids[start:end]

		args := make([]any, 0, len(batch)+1)
		args = append(args, recipientID)
		for _, id := range batch {
			args = append(args, id)
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE messages SET is_read = 1 WHERE recipient_id = ? AND is_read = 0 AND id IN ("+placeholders(len(batch))+")",
			args...,
		)
		if err != nil {
			return 0, storeError("mark read", err)
		}
		n, _ := result.RowsAffected()
		changed += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeError("mark read", err)
	}

	return changed, nil
}

// Delete hard-deletes a single message.
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return storeError("delete message", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return &messaging.NotFoundError{Entity: "message", ID: id}
	}

	return nil
}

// DeleteConversation hard-deletes every message between the pair.
func (r *MessageRepository) DeleteConversation(ctx context.Context, pair messaging.Pair) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE "+pairFilter, pair.Low, pair.High)
	if err != nil {
		return 0, storeError("clear conversation", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// ListPartners returns the distinct users userID has sent to or received from.
func (r *MessageRepository) ListPartners(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id
		FROM messages
		WHERE sender_id = ? OR recipient_id = ?
		ORDER BY partner_id`,
		userID, userID, userID,
	)
	if err != nil {
		return nil, storeError("list partners", err)
	}
	defer rows.Close()

	var partners []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeError("scan partner", err)
		}
		partners = append(partners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list partners", err)
	}

	return partners, nil
}

// LatestPerPartner returns the newest message of every conversation userID
// takes part in, newest conversation first.
func (r *MessageRepository) LatestPerPartner(ctx context.Context, userID int64) ([]*secondary.MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+messageColumns+` FROM (
			SELECT `+messageColumns+`,
				ROW_NUMBER() OVER (
					PARTITION BY min(sender_id, recipient_id), max(sender_id, recipient_id)
					ORDER BY created_at DESC, id DESC
				) AS rn
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
		)
		WHERE rn = 1
		ORDER BY created_at DESC, id DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, storeError("list latest messages", err)
	}

	return collectMessages(rows, "list latest messages")
}

// UnreadBySender groups the unread messages addressed to userID by sender.
func (r *MessageRepository) UnreadBySender(ctx context.Context, userID int64) (map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT sender_id, COUNT(*) FROM messages WHERE recipient_id = ? AND is_read = 0 GROUP BY sender_id",
		userID,
	)
	if err != nil {
		return nil, storeError("count unread by sender", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			senderID int64
			count    int
		)
		if err := rows.Scan(&senderID, &count); err != nil {
			return nil, storeError("scan unread count", err)
		}
		counts[senderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("count unread by sender", err)
	}

	return counts, nil
}

// UnreadCount returns the count of unread messages for a recipient.
func (r *MessageRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE recipient_id = ? AND is_read = 0",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, storeError("get unread count", err)
	}

	return count, nil
}

func scanMessage(row rowScanner) (*secondary.MessageRecord, error) {
	var (
		offerID   sql.NullInt64
		readInt   int
		createdAt int64
	)

	record := &secondary.MessageRecord{}
	err := row.Scan(&record.ID, &record.SenderID, &record.RecipientID, &offerID, &record.Body, &readInt, &createdAt)
	if err != nil {
		return nil, err
	}

	record.OfferID = offerID.Int64
	record.Read = readInt == 1
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return record, nil
}

// collectMessages drains and closes rows.
func collectMessages(rows *sql.Rows, op string) ([]*secondary.MessageRecord, error) {
	defer rows.Close()

	var messages []*secondary.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, storeError("scan message", err)
		}
		messages = append(messages, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return messages, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Ensure MessageRepository implements the interface.
var _ secondary.MessageRepository = (*MessageRepository)(nil)
