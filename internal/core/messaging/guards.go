// Package messaging contains the pure business logic for direct messaging.
// This is part of the Functional Core - no I/O, only pure functions.
package messaging

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Paging defaults applied when the caller does not configure them.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200

	// DefaultMaxBodyLength is the message text limit, in characters.
	DefaultMaxBodyLength = 4000
)

// GuardKind classifies a failed guard so it can be turned into a typed error.
type GuardKind int

const (
	KindValidation GuardKind = iota
	KindPermission
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    GuardKind
	Field   string // Offending field for validation failures
	Action  string // Attempted action for permission failures
	UserID  int64  // Acting user for permission failures
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as a typed error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind == KindPermission {
		return &PermissionError{Action: r.Action, UserID: r.UserID, Reason: r.Reason}
	}
	return &ValidationError{Field: r.Field, Reason: r.Reason}
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

func invalid(field, reason string) GuardResult {
	return GuardResult{Kind: KindValidation, Field: field, Reason: reason}
}

func denied(action string, userID int64, reason string) GuardResult {
	return GuardResult{Kind: KindPermission, Action: action, UserID: userID, Reason: reason}
}

// SendContext provides the context needed to validate a send request.
type SendContext struct {
	SenderID      int64
	RecipientID   int64
	Body          string
	MaxBodyLength int // 0 disables the length check
}

// DeleteContext provides context for single-message deletion.
// Populated by the caller with the stored message's sender.
type DeleteContext struct {
	MessageID   int64
	SenderID    int64
	RequesterID int64
}

// ClearContext provides context for erasing a whole conversation.
type ClearContext struct {
	UserA       int64
	UserB       int64
	RequesterID int64
}

// PageContext provides context for history pagination.
type PageContext struct {
	Page        int
	PageSize    int
	MaxPageSize int // 0 means MaxPageSize
}

// NormalizeBody returns the body as it is stored.
func NormalizeBody(body string) string {
	return strings.TrimSpace(body)
}

// CanSend evaluates whether a message may be appended.
// Rule: both users must be known IDs, distinct, and the trimmed body non-empty.
func CanSend(ctx SendContext) GuardResult {
	if ctx.SenderID <= 0 {
		return invalid("sender", fmt.Sprintf("user id must be positive (got %d)", ctx.SenderID))
	}
	if ctx.RecipientID <= 0 {
		return invalid("recipient", fmt.Sprintf("user id must be positive (got %d)", ctx.RecipientID))
	}
	if ctx.SenderID == ctx.RecipientID {
		return invalid("recipient", "cannot send a message to yourself")
	}

	body := NormalizeBody(ctx.Body)
	if body == "" {
		return invalid("text", "message cannot be empty")
	}
	if ctx.MaxBodyLength > 0 && utf8.RuneCountInString(body) > ctx.MaxBodyLength {
		return invalid("text", fmt.Sprintf("message exceeds %d characters", ctx.MaxBodyLength))
	}
	return allowed()
}

// CanReadConversation evaluates whether a conversation between two users can be addressed.
func CanReadConversation(userA, userB int64) GuardResult {
	if userA <= 0 || userB <= 0 {
		return invalid("user", "user ids must be positive")
	}
	if userA == userB {
		return invalid("user", "a conversation needs two distinct users")
	}
	return allowed()
}

// CanDeleteMessage evaluates whether the requester may delete a message.
// Rule: only the sender can delete their own message.
func CanDeleteMessage(ctx DeleteContext) GuardResult {
	if ctx.RequesterID != ctx.SenderID {
		return denied("delete message", ctx.RequesterID,
			fmt.Sprintf("message %d was not sent by this user", ctx.MessageID))
	}
	return allowed()
}

// CanClearConversation evaluates whether the requester may erase a conversation.
// Rule: the requester must be one of the two participants.
func CanClearConversation(ctx ClearContext) GuardResult {
	if r := CanReadConversation(ctx.UserA, ctx.UserB); !r.Allowed {
		return r
	}
	if !NewPair(ctx.UserA, ctx.UserB).Contains(ctx.RequesterID) {
		return denied("clear conversation", ctx.RequesterID, "not a participant")
	}
	return allowed()
}

// CheckPage evaluates a 1-indexed page request.
// A zero PageSize is accepted and resolved to the default by ResolvePageSize.
func CheckPage(ctx PageContext) GuardResult {
	limit := ctx.MaxPageSize
	if limit <= 0 {
		limit = MaxPageSize
	}
	if ctx.Page < 1 {
		return invalid("page", fmt.Sprintf("must be >= 1 (got %d)", ctx.Page))
	}
	if ctx.PageSize < 0 || ctx.PageSize > limit {
		return invalid("page_size", fmt.Sprintf("must be between 1 and %d (got %d)", limit, ctx.PageSize))
	}
	// Resolved sizes never exceed limit, so this keeps Offset from overflowing
	if ctx.Page > math.MaxInt/limit+1 {
		return invalid("page", fmt.Sprintf("must be <= %d (got %d)", math.MaxInt/limit+1, ctx.Page))
	}
	return allowed()
}

// ResolvePageSize returns pageSize, or fallback (then DefaultPageSize) when unset.
func ResolvePageSize(pageSize, fallback int) int {
	if pageSize > 0 {
		return pageSize
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultPageSize
}

// Offset converts a 1-indexed page into a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
