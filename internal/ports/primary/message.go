// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI and HTTP adapters drive.
package primary

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/message_mock.go -package=mock . MessageService

// MessageService defines the primary port for direct messaging.
type MessageService interface {
	// Send validates and appends a message from SenderID to RecipientID.
	Send(ctx context.Context, req SendMessageRequest) (*Message, error)

	// History returns one page of a conversation, oldest first. It never mutates state.
	History(ctx context.Context, req HistoryRequest) ([]*Message, error)

	// ViewConversation returns one page of a conversation as seen by req.UserA and
	// marks the returned messages addressed to that viewer as read.
	ViewConversation(ctx context.Context, req HistoryRequest) (*ConversationPage, error)

	// MessagesSince returns messages of a conversation with ID greater than afterID. It never mutates state.
	MessagesSince(ctx context.Context, userA, userB, afterID int64) ([]*Message, error)

	// PollConversation is MessagesSince for a viewer, marking returned incoming messages as read.
	PollConversation(ctx context.Context, viewerID, partnerID, afterID int64) ([]*Message, error)

	// ConversationSize returns the number of messages exchanged between two users.
	ConversationSize(ctx context.Context, userA, userB int64) (int, error)

	// MarkRead marks messages addressed to recipientID as read and returns how many changed.
	MarkRead(ctx context.Context, messageIDs []int64, recipientID int64) (int, error)

	// ListDialogs returns the user's conversations, most recently active first.
	ListDialogs(ctx context.Context, userID int64) ([]*DialogSummary, error)

	// UnreadCount returns the total number of unread messages addressed to userID.
	UnreadCount(ctx context.Context, userID int64) (int, error)

	// DeleteMessage deletes a message on behalf of its sender.
	DeleteMessage(ctx context.Context, messageID, requesterID int64) (bool, error)

	// ClearConversation erases a whole conversation and returns how many messages were removed.
	ClearConversation(ctx context.Context, req ClearConversationRequest) (int, error)
}

// SendMessageRequest contains parameters for sending a message.
type SendMessageRequest struct {
	SenderID    int64
	RecipientID int64
	Text        string
	OfferID     *int64
}

// HistoryRequest addresses one page of the conversation between UserA and UserB.
// Page is 1-indexed; a zero PageSize selects the configured default.
type HistoryRequest struct {
	UserA    int64
	UserB    int64
	Page     int
	PageSize int
}

// ConversationPage is the result of viewing a conversation.
type ConversationPage struct {
	Messages   []*Message `json:"messages"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Total      int        `json:"total"`
	MarkedRead int        `json:"marked_read"`
}

// ClearConversationRequest contains parameters for erasing a conversation.
type ClearConversationRequest struct {
	UserA       int64
	UserB       int64
	RequesterID int64
}

// Message represents a message at the port boundary.
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	OfferID     *int64    `json:"offer_id,omitempty"`
	OfferTitle  string    `json:"offer_title,omitempty"`
	Text        string    `json:"text"`
	Read        bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Partner describes the other participant of a dialog.
// Known is false when the user directory no longer has the partner.
type Partner struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	AvatarRef string `json:"avatar,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Known     bool   `json:"known"`
}

// DialogSummary is one entry of a user's dialog list.
type DialogSummary struct {
	Partner     Partner  `json:"partner"`
	LastMessage *Message `json:"last_message"`
	IsMine      bool     `json:"is_my_message"`
	UnreadCount int      `json:"unread_count"`
}
