package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockMessageService implements primary.MessageService for testing.
type mockMessageService struct {
	sendFn         func(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error)
	historyFn      func(ctx context.Context, req primary.HistoryRequest) ([]*primary.Message, error)
	viewFn         func(ctx context.Context, req primary.HistoryRequest) (*primary.ConversationPage, error)
	pollFn         func(ctx context.Context, viewerID, partnerID, afterID int64) ([]*primary.Message, error)
	sizeFn         func(ctx context.Context, userA, userB int64) (int, error)
	markReadFn     func(ctx context.Context, ids []int64, recipientID int64) (int, error)
	listDialogsFn  func(ctx context.Context, userID int64) ([]*primary.DialogSummary, error)
	unreadCountFn  func(ctx context.Context, userID int64) (int, error)
	deleteFn       func(ctx context.Context, messageID, requesterID int64) (bool, error)
	clearFn        func(ctx context.Context, req primary.ClearConversationRequest) (int, error)
	lastSendReq    primary.SendMessageRequest
	lastHistoryReq primary.HistoryRequest
	lastClearReq   primary.ClearConversationRequest
}

func (m *mockMessageService) Send(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
	m.lastSendReq = req
	if m.sendFn != nil {
		return m.sendFn(ctx, req)
	}
	return &primary.Message{ID: 1, SenderID: req.SenderID, RecipientID: req.RecipientID, Text: req.Text}, nil
}

func (m *mockMessageService) History(ctx context.Context, req primary.HistoryRequest) ([]*primary.Message, error) {
	m.lastHistoryReq = req
	if m.historyFn != nil {
		return m.historyFn(ctx, req)
	}
	return nil, nil
}

func (m *mockMessageService) ViewConversation(ctx context.Context, req primary.HistoryRequest) (*primary.ConversationPage, error) {
	m.lastHistoryReq = req
	if m.viewFn != nil {
		return m.viewFn(ctx, req)
	}
	return &primary.ConversationPage{Page: req.Page, PageSize: messaging.DefaultPageSize}, nil
}

func (m *mockMessageService) MessagesSince(ctx context.Context, userA, userB, afterID int64) ([]*primary.Message, error) {
	return nil, nil
}

func (m *mockMessageService) PollConversation(ctx context.Context, viewerID, partnerID, afterID int64) ([]*primary.Message, error) {
	if m.pollFn != nil {
		return m.pollFn(ctx, viewerID, partnerID, afterID)
	}
	return nil, nil
}

func (m *mockMessageService) ConversationSize(ctx context.Context, userA, userB int64) (int, error) {
	if m.sizeFn != nil {
		return m.sizeFn(ctx, userA, userB)
	}
	return 0, nil
}

func (m *mockMessageService) MarkRead(ctx context.Context, ids []int64, recipientID int64) (int, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, ids, recipientID)
	}
	return len(ids), nil
}

func (m *mockMessageService) ListDialogs(ctx context.Context, userID int64) ([]*primary.DialogSummary, error) {
	if m.listDialogsFn != nil {
		return m.listDialogsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockMessageService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockMessageService) DeleteMessage(ctx context.Context, messageID, requesterID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, messageID, requesterID)
	}
	return true, nil
}

func (m *mockMessageService) ClearConversation(ctx context.Context, req primary.ClearConversationRequest) (int, error) {
	m.lastClearReq = req
	if m.clearFn != nil {
		return m.clearFn(ctx, req)
	}
	return 0, nil
}

func newMessageAdapter() (*MessageAdapter, *mockMessageService, *bytes.Buffer) {
	service := &mockMessageService{}
	out := &bytes.Buffer{}
	return NewMessageAdapter(service, out), service, out
}

func int64Ptr(v int64) *int64 { return &v }

func TestMessageAdapter_Send(t *testing.T) {
	adapter, service, out := newMessageAdapter()

	msg, err := adapter.Send(context.Background(), 1, 2, "Hi!", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID != 1 {
		t.Errorf("expected message ID 1, got %d", msg.ID)
	}
	if service.lastSendReq.SenderID != 1 || service.lastSendReq.RecipientID != 2 {
		t.Errorf("unexpected request: %+v", service.lastSendReq)
	}
	if !strings.Contains(out.String(), "✓ Message 1 sent to user 2") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}
}

func TestMessageAdapter_Send_WithOffer(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	service.sendFn = func(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
		return &primary.Message{ID: 3, RecipientID: 2, OfferID: req.OfferID, OfferTitle: "Road bike"}, nil
	}

	_, err := adapter.Send(context.Background(), 1, 2, "Still available?", int64Ptr(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `Re: offer 42 "Road bike"`) {
		t.Errorf("expected offer line, got: %s", out.String())
	}
}

func TestMessageAdapter_Send_OfferDropped(t *testing.T) {
	adapter, _, out := newMessageAdapter()

	_, err := adapter.Send(context.Background(), 1, 2, "Still available?", int64Ptr(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "offer 42 is no longer listed") {
		t.Errorf("expected dropped-offer note, got: %s", out.String())
	}
}

func TestMessageAdapter_Send_Error(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	service.sendFn = func(ctx context.Context, req primary.SendMessageRequest) (*primary.Message, error) {
		return nil, &messaging.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	_, err := adapter.Send(context.Background(), 1, 2, "", nil)
	if !messaging.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on error, got: %s", out.String())
	}
}

func TestMessageAdapter_History_View(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	service.viewFn = func(ctx context.Context, req primary.HistoryRequest) (*primary.ConversationPage, error) {
		return &primary.ConversationPage{
			Messages: []*primary.Message{
				{ID: 1, SenderID: 1, RecipientID: 2, Text: "hello bob", Read: true, CreatedAt: at},
				{ID: 2, SenderID: 2, RecipientID: 1, Text: "hi alice", CreatedAt: at.Add(time.Minute)},
			},
			Page:       1,
			PageSize:   50,
			Total:      2,
			MarkedRead: 1,
		}, nil
	}

	messages, err := adapter.History(context.Background(), 1, 2, 1, 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if service.lastHistoryReq.UserA != 1 || service.lastHistoryReq.UserB != 2 {
		t.Errorf("viewer must be UserA, got %+v", service.lastHistoryReq)
	}

	output := out.String()
	for _, want := range []string{
		"Conversation with user 2 (page 1 of 1, 2 messages)",
		"you: hello bob",
		"user 2: hi alice",
		"● #2",
		"✓ 1 message marked read",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestMessageAdapter_History_Peek(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	service.historyFn = func(ctx context.Context, req primary.HistoryRequest) ([]*primary.Message, error) {
		return []*primary.Message{{ID: 5, SenderID: 2, RecipientID: 1, Text: "peek"}}, nil
	}
	service.sizeFn = func(ctx context.Context, userA, userB int64) (int, error) {
		return 5, nil
	}
	service.viewFn = func(ctx context.Context, req primary.HistoryRequest) (*primary.ConversationPage, error) {
		t.Error("peeking must not view the conversation")
		return nil, nil
	}

	_, err := adapter.History(context.Background(), 1, 2, 3, 2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "page 3 of 3, 5 messages") {
		t.Errorf("expected page label, got: %s", out.String())
	}
	if strings.Contains(out.String(), "marked read") {
		t.Errorf("peek must not report marking, got: %s", out.String())
	}
}

func TestMessageAdapter_History_Empty(t *testing.T) {
	adapter, _, out := newMessageAdapter()

	_, err := adapter.History(context.Background(), 1, 2, 1, 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No messages with user 2 yet.") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestMessageAdapter_Poll(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	var gotAfter int64
	service.pollFn = func(ctx context.Context, viewerID, partnerID, afterID int64) ([]*primary.Message, error) {
		gotAfter = afterID
		return []*primary.Message{
			{ID: 8, SenderID: 2, RecipientID: 1, Text: "new one", Read: true},
			{ID: 9, SenderID: 2, RecipientID: 1, Text: "another", Read: true},
		}, nil
	}

	_, err := adapter.Poll(context.Background(), 1, 2, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAfter != 7 {
		t.Errorf("expected cursor 7, got %d", gotAfter)
	}
	if !strings.Contains(out.String(), "Next cursor: --after 9") {
		t.Errorf("expected next cursor, got: %s", out.String())
	}
}

func TestMessageAdapter_Poll_Nothing(t *testing.T) {
	adapter, _, out := newMessageAdapter()

	_, err := adapter.Poll(context.Background(), 1, 2, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No new messages.") {
		t.Errorf("expected no-new message, got: %s", out.String())
	}
}

func TestMessageAdapter_MarkRead(t *testing.T) {
	adapter, _, out := newMessageAdapter()

	updated, err := adapter.MarkRead(context.Background(), []int64{1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 3 {
		t.Errorf("expected 3 updated, got %d", updated)
	}
	if !strings.Contains(out.String(), "✓ 3 messages marked read") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}
}

func TestMessageAdapter_Delete(t *testing.T) {
	adapter, service, out := newMessageAdapter()

	if err := adapter.Delete(context.Background(), 4, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Message 4 deleted") {
		t.Errorf("expected confirmation, got: %s", out.String())
	}

	out.Reset()
	service.deleteFn = func(ctx context.Context, messageID, requesterID int64) (bool, error) {
		return false, &messaging.PermissionError{Action: "delete message", UserID: requesterID, Reason: "only the sender may delete a message"}
	}
	err := adapter.Delete(context.Background(), 4, 2)
	if !messaging.IsPermission(err) {
		t.Errorf("expected permission error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on error, got: %s", out.String())
	}
}

func TestMessageAdapter_Clear(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	service.clearFn = func(ctx context.Context, req primary.ClearConversationRequest) (int, error) {
		return 12, nil
	}

	removed, err := adapter.Clear(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 12 {
		t.Errorf("expected 12 removed, got %d", removed)
	}
	if service.lastClearReq.RequesterID != 1 {
		t.Errorf("requester must be the caller, got %d", service.lastClearReq.RequesterID)
	}
	if !strings.Contains(out.String(), "(12 messages removed)") {
		t.Errorf("expected removal count, got: %s", out.String())
	}
}

func TestMessageAdapter_Dialogs(t *testing.T) {
	adapter, service, out := newMessageAdapter()
	now := time.Now()
	service.listDialogsFn = func(ctx context.Context, userID int64) ([]*primary.DialogSummary, error) {
		return []*primary.DialogSummary{
			{
				Partner:     primary.Partner{ID: 2, Username: "bob", FullName: "Bob Builder", Known: true},
				LastMessage: &primary.Message{ID: 9, SenderID: 2, Text: "deal?", CreatedAt: now.Add(-3 * time.Minute)},
				UnreadCount: 2,
			},
			{
				Partner:     primary.Partner{ID: 7},
				LastMessage: &primary.Message{ID: 4, SenderID: 1, Text: strings.Repeat("x", 60), CreatedAt: now.Add(-48 * time.Hour)},
				IsMine:      true,
			},
		}, nil
	}

	dialogs, err := adapter.Dialogs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dialogs) != 2 {
		t.Fatalf("expected 2 dialogs, got %d", len(dialogs))
	}

	output := out.String()
	for _, want := range []string{
		"PARTNER",
		"bob (Bob Builder)",
		"deal?",
		"3 minutes ago",
		"user 7 (unknown)",
		"you: " + strings.Repeat("x", previewRunes-1) + "…",
		"2 days ago",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestMessageAdapter_Dialogs_Empty(t *testing.T) {
	adapter, _, out := newMessageAdapter()

	_, err := adapter.Dialogs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No conversations yet.") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestMessageAdapter_Dialogs_Error(t *testing.T) {
	adapter, service, _ := newMessageAdapter()
	storeErr := &messaging.StoreUnavailableError{Op: "list partners", Err: errors.New("disk I/O error")}
	service.listDialogsFn = func(ctx context.Context, userID int64) ([]*primary.DialogSummary, error) {
		return nil, storeErr
	}

	_, err := adapter.Dialogs(context.Background(), 1)
	if !messaging.IsStoreUnavailable(err) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestMessageAdapter_Unread(t *testing.T) {
	adapter, service, out := newMessageAdapter()

	count, err := adapter.Unread(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 || !strings.Contains(out.String(), "No unread messages.") {
		t.Errorf("expected zero badge, got %d / %s", count, out.String())
	}

	out.Reset()
	service.unreadCountFn = func(ctx context.Context, userID int64) (int, error) {
		return 1500, nil
	}
	count, err = adapter.Unread(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1500 || !strings.Contains(out.String(), "1,500 messages unread") {
		t.Errorf("expected badge, got %d / %s", count, out.String())
	}
}
