// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/barter/internal/core/messaging"
)

// MessageRepository defines the secondary port for the durable message log.
// Every method is a single atomic operation against the store.
type MessageRepository interface {
	// Create appends a message. The store assigns ID and clamps CreatedAt so it
	// never precedes the newest stored message; both are written back to message.
	Create(ctx context.Context, message *MessageRecord) error

	// GetByID retrieves a message by its ID.
	// Returns a *messaging.NotFoundError when no such message exists.
	GetByID(ctx context.Context, id int64) (*MessageRecord, error)

	// ListConversation returns one window of a conversation, oldest first.
	ListConversation(ctx context.Context, pair messaging.Pair, limit, offset int) ([]*MessageRecord, error)

	// ListConversationAfter returns every message of a conversation with ID > afterID, oldest first.
	ListConversationAfter(ctx context.Context, pair messaging.Pair, afterID int64) ([]*MessageRecord, error)

	// CountConversation returns the number of messages in a conversation.
	CountConversation(ctx context.Context, pair messaging.Pair) (int, error)

	// MarkRead flips the read flag of the given messages addressed to recipientID.
	// Returns the number of messages that actually changed state.
	MarkRead(ctx context.Context, ids []int64, recipientID int64) (int, error)

	// Delete hard-deletes a single message.
	Delete(ctx context.Context, id int64) error

	// DeleteConversation hard-deletes every message of a conversation and returns how many were removed.
	DeleteConversation(ctx context.Context, pair messaging.Pair) (int, error)

	// ListPartners returns every distinct user that userID has exchanged messages with.
	ListPartners(ctx context.Context, userID int64) ([]int64, error)

	// LatestPerPartner returns the newest message of each of userID's conversations.
	LatestPerPartner(ctx context.Context, userID int64) ([]*MessageRecord, error)

	// UnreadBySender returns unread counts addressed to userID, keyed by sender.
	UnreadBySender(ctx context.Context, userID int64) (map[int64]int, error)

	// UnreadCount returns the number of unread messages addressed to userID.
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// MessageRecord represents a message as stored in persistence.
type MessageRecord struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	OfferID     int64 // 0 when the message carries no offer reference
	Body        string
	Read        bool
	CreatedAt   time.Time
}

// Pair returns the conversation the message belongs to.
func (r *MessageRecord) Pair() messaging.Pair {
	return messaging.NewPair(r.SenderID, r.RecipientID)
}

// UserDirectory is the consumed user-account collaborator.
type UserDirectory interface {
	// Exists reports whether the user is registered.
	Exists(ctx context.Context, userID int64) (bool, error)

	// GetDisplayInfo returns display attributes, or nil when the user is unknown.
	GetDisplayInfo(ctx context.Context, userID int64) (*DisplayInfo, error)
}

// DisplayInfo holds the user attributes shown next to a conversation.
type DisplayInfo struct {
	Username  string
	AvatarRef string
	FullName  string
}

// OfferDirectory is the consumed offer/listing collaborator.
type OfferDirectory interface {
	// IsActive reports whether the offer exists and is still listed.
	IsActive(ctx context.Context, offerID int64) (bool, error)

	// GetTitle returns the offer title; ok is false when the offer is unknown.
	GetTitle(ctx context.Context, offerID int64) (title string, ok bool, err error)
}

// UserRepository is the local user directory used by the CLI and the demo server.
type UserRepository interface {
	UserDirectory

	// Create persists a new user and assigns its ID.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id int64) (*UserRecord, error)

	// UsernameTaken reports whether a username is already registered.
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// UserRecord represents a user as stored by the local directory.
type UserRecord struct {
	ID        int64
	Username  string
	FullName  string
	AvatarRef string
	CreatedAt time.Time
}

// OfferRepository is the local offer directory used by the CLI and the demo server.
type OfferRepository interface {
	OfferDirectory

	// Create persists a new offer and assigns its ID.
	Create(ctx context.Context, offer *OfferRecord) error

	// GetByID retrieves an offer by its ID.
	GetByID(ctx context.Context, id int64) (*OfferRecord, error)

	// SetActive lists or unlists an offer.
	SetActive(ctx context.Context, id int64, active bool) error
}

// OfferRecord represents an offer as stored by the local directory.
type OfferRecord struct {
	ID        int64
	OwnerID   int64
	Title     string
	Active    bool
	CreatedAt time.Time
}
