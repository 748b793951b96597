package messaging

import "fmt"

// Pair identifies a conversation between two users independent of direction.
// Low is always <= High, so NewPair(a, b) == NewPair(b, a).
type Pair struct {
	Low  int64
	High int64
}

// NewPair normalizes two user IDs into a conversation key.
func NewPair(a, b int64) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Low: a, High: b}
}

// Key returns a stable string form, usable as a map or cache key.
func (p Pair) Key() string {
	return fmt.Sprintf("%d:%d", p.Low, p.High)
}

// IsSelf reports whether both sides of the pair are the same user.
func (p Pair) IsSelf() bool {
	return p.Low == p.High
}

// Contains reports whether userID participates in the conversation.
func (p Pair) Contains(userID int64) bool {
	return p.Low == userID || p.High == userID
}

// Partner returns the other participant from userID's point of view.
// ok is false when userID is not part of the pair.
func (p Pair) Partner(userID int64) (partner int64, ok bool) {
	switch userID {
	case p.Low:
		return p.High, true
	case p.High:
		return p.Low, true
	}
	return 0, false
}
