package messaging

import (
	"sort"
	"time"
)

// LatestMessage carries the ordering keys of a conversation's newest message.
type LatestMessage struct {
	MessageID int64
	SenderID  int64
	CreatedAt time.Time
}

// After reports whether m sorts after other in conversation order
// (timestamp, tie-broken by ID).
func (m LatestMessage) After(other LatestMessage) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.After(other.CreatedAt)
	}
	return m.MessageID > other.MessageID
}

// Dialog is one entry of a user's dialog list before display decoration.
type Dialog struct {
	PartnerID   int64
	Latest      LatestMessage
	IsMine      bool // Latest was sent by the viewer
	UnreadCount int  // Unread messages from PartnerID addressed to the viewer
}

// AssembleDialogs merges the three aggregation inputs into an ordered dialog list.
//
// partners is the distinct-partner enumeration, latest maps partner -> newest
// message of that conversation, unread maps sender -> unread count for the viewer.
// The inputs come from separate reads, so a partner without a latest message
// (conversation cleared in between) is dropped, and a latest message without an
// enumerated partner (message arrived in between) is kept. Newest first.
func AssembleDialogs(viewerID int64, partners []int64, latest map[int64]LatestMessage, unread map[int64]int) []Dialog {
	seen := make(map[int64]bool, len(partners)+len(latest))
	candidates := make([]int64, 0, len(partners)+len(latest))
	for _, p := range partners {
		if !seen[p] {
			seen[p] = true
			candidates = append(candidates, p)
		}
	}
	for p := range latest {
		if !seen[p] {
			seen[p] = true
			candidates = append(candidates, p)
		}
	}

	dialogs := make([]Dialog, 0, len(candidates))
	for _, partnerID := range candidates {
		if partnerID == viewerID {
			continue
		}
		last, ok := latest[partnerID]
		if !ok {
			continue
		}
		dialogs = append(dialogs, Dialog{
			PartnerID:   partnerID,
			Latest:      last,
			IsMine:      last.SenderID == viewerID,
			UnreadCount: unread[partnerID],
		})
	}

	sort.Slice(dialogs, func(i, j int) bool {
		return dialogs[i].Latest.After(dialogs[j].Latest)
	})
	return dialogs
}

// VanishedPartners returns the enumerated partners that have no latest message,
// in enumeration order. A non-empty result means a conversation was cleared
// between the partner enumeration and the latest-message read.
func VanishedPartners(viewerID int64, partners []int64, latest map[int64]LatestMessage) []int64 {
	var vanished []int64
	seen := make(map[int64]bool, len(partners))
	for _, p := range partners {
		if p == viewerID || seen[p] {
			continue
		}
		seen[p] = true
		if _, ok := latest[p]; !ok {
			vanished = append(vanished, p)
		}
	}
	return vanished
}

// TotalUnread sums the per-partner unread counts of a dialog list.
func TotalUnread(dialogs []Dialog) int {
	total := 0
	for _, d := range dialogs {
		total += d.UnreadCount
	}
	return total
}
