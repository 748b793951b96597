// Package cli contains thin adapters that render service results for the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/barter/internal/core/messaging"
	"github.com/example/barter/internal/ports/primary"
)

const previewRunes = 40

var (
	ownColor     = color.New(color.FgCyan)
	partnerColor = color.New(color.FgGreen)
	unreadColor  = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.Faint)
)

// MessageAdapter is a thin adapter that translates CLI operations to MessageService calls.
// It depends only on the MessageService interface, enabling easy testing with mocks.
type MessageAdapter struct {
	service primary.MessageService
	out     io.Writer
}

// NewMessageAdapter creates a new MessageAdapter with the given service.
func NewMessageAdapter(service primary.MessageService, out io.Writer) *MessageAdapter {
	return &MessageAdapter{
		service: service,
		out:     out,
	}
}

// Send sends a message and prints a confirmation.
func (a *MessageAdapter) Send(ctx context.Context, senderID, recipientID int64, text string, offerID *int64) (*primary.Message, error) {
	msg, err := a.service.Send(ctx, primary.SendMessageRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		OfferID:     offerID,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Message %d sent to user %d\n", msg.ID, msg.RecipientID)
	switch {
	case msg.OfferID != nil:
		fmt.Fprintf(a.out, "  Re: %s\n", offerLabel(msg))
	case offerID != nil:
		fmt.Fprintf(a.out, "  (offer %d is no longer listed, sent without reference)\n", *offerID)
	}
	return msg, nil
}

// History prints one page of a conversation as seen by viewerID.
// With markRead the page is viewed, which marks incoming messages read.
func (a *MessageAdapter) History(ctx context.Context, viewerID, partnerID int64, page, pageSize int, markRead bool) ([]*primary.Message, error) {
	req := primary.HistoryRequest{UserA: viewerID, UserB: partnerID, Page: page, PageSize: pageSize}

	var (
		messages []*primary.Message
		total    int
		marked   int
	)
	if markRead {
		view, err := a.service.ViewConversation(ctx, req)
		if err != nil {
			return nil, err
		}
		messages, total, marked = view.Messages, view.Total, view.MarkedRead
		pageSize = view.PageSize
	} else {
		var err error
		messages, err = a.service.History(ctx, req)
		if err != nil {
			return nil, err
		}
		total, err = a.service.ConversationSize(ctx, viewerID, partnerID)
		if err != nil {
			return nil, err
		}
	}

	if total == 0 {
		fmt.Fprintf(a.out, "No messages with user %d yet.\n", partnerID)
		return messages, nil
	}

	fmt.Fprintf(a.out, "\nConversation with user %d (%s)\n", partnerID, pageLabel(page, pageSize, total))
	fmt.Fprintln(a.out)
	if len(messages) == 0 {
		fmt.Fprintln(a.out, "  (no messages on this page)")
	}
	for _, msg := range messages {
		a.printMessage(msg, viewerID)
	}
	if marked > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "✓ %s marked read\n", plural(marked, "message"))
	}
	fmt.Fprintln(a.out)

	return messages, nil
}

// Poll prints the messages that arrived after afterID and marks them read.
func (a *MessageAdapter) Poll(ctx context.Context, viewerID, partnerID, afterID int64) ([]*primary.Message, error) {
	messages, err := a.service.PollConversation(ctx, viewerID, partnerID, afterID)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		fmt.Fprintln(a.out, "No new messages.")
		return messages, nil
	}
	for _, msg := range messages {
		a.printMessage(msg, viewerID)
	}
	fmt.Fprintf(a.out, "\nNext cursor: --after %d\n", messages[len(messages)-1].ID)
	return messages, nil
}

func (a *MessageAdapter) printMessage(msg *primary.Message, viewerID int64) {
	who := partnerColor.Sprintf("user %d", msg.SenderID)
	marker := " "
	if msg.SenderID == viewerID {
		who = ownColor.Sprint("you")
	} else if !msg.Read {
		marker = unreadColor.Sprint("●")
	}

	fmt.Fprintf(a.out, "%s #%d %s %s: %s\n",
		marker,
		msg.ID,
		dimColor.Sprint(msg.CreatedAt.Local().Format("2006-01-02 15:04")),
		who,
		msg.Text,
	)
	if msg.OfferID != nil {
		fmt.Fprintf(a.out, "      re: %s\n", offerLabel(msg))
	}
}

// MarkRead marks messages addressed to userID as read.
func (a *MessageAdapter) MarkRead(ctx context.Context, ids []int64, userID int64) (int, error) {
	updated, err := a.service.MarkRead(ctx, ids, userID)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ %s marked read\n", plural(updated, "message"))
	return updated, nil
}

// Delete deletes one of the user's own messages.
func (a *MessageAdapter) Delete(ctx context.Context, messageID, userID int64) error {
	if _, err := a.service.DeleteMessage(ctx, messageID, userID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Message %d deleted\n", messageID)
	return nil
}

// Clear erases the whole conversation between userID and partnerID.
func (a *MessageAdapter) Clear(ctx context.Context, userID, partnerID int64) (int, error) {
	removed, err := a.service.ClearConversation(ctx, primary.ClearConversationRequest{
		UserA:       userID,
		UserB:       partnerID,
		RequesterID: userID,
	})
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "✓ Conversation with user %d cleared (%s removed)\n", partnerID, plural(removed, "message"))
	return removed, nil
}

// Dialogs lists the user's conversations, most recent first.
func (a *MessageAdapter) Dialogs(ctx context.Context, userID int64) ([]*primary.DialogSummary, error) {
	dialogs, err := a.service.ListDialogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dialogs: %w", err)
	}

	if len(dialogs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Start one:")
		fmt.Fprintln(a.out, "  barter send --to <user-id> \"Hi, is this still available?\"")
		return dialogs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PARTNER\tLAST MESSAGE\tWHEN\tUNREAD")
	fmt.Fprintln(w, "-------\t------------\t----\t------")

	for _, d := range dialogs {
		preview := truncate(d.LastMessage.Text, previewRunes)
		if d.IsMine {
			preview = "you: " + preview
		}
		unread := ""
		if d.UnreadCount > 0 {
			unread = fmt.Sprintf("%d", d.UnreadCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			partnerLabel(d.Partner),
			preview,
			humanize.Time(d.LastMessage.CreatedAt),
			unread,
		)
	}

	w.Flush()
	return dialogs, nil
}

// Unread prints the user's unread badge count.
func (a *MessageAdapter) Unread(ctx context.Context, userID int64) (int, error) {
	count, err := a.service.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		fmt.Fprintln(a.out, "No unread messages.")
		return 0, nil
	}
	fmt.Fprintf(a.out, "%s unread\n", unreadColor.Sprint(plural(count, "message")))
	return count, nil
}

func partnerLabel(p primary.Partner) string {
	if !p.Known {
		return fmt.Sprintf("user %d (unknown)", p.ID)
	}
	if p.FullName != "" {
		return fmt.Sprintf("%s (%s)", p.Username, p.FullName)
	}
	return p.Username
}

func offerLabel(msg *primary.Message) string {
	if msg.OfferTitle != "" {
		return fmt.Sprintf("offer %d %q", *msg.OfferID, msg.OfferTitle)
	}
	return fmt.Sprintf("offer %d", *msg.OfferID)
}

func pageLabel(page, pageSize, total int) string {
	if pageSize <= 0 {
		pageSize = messaging.DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	return fmt.Sprintf("page %d of %d, %s", page, pages, plural(total, "message"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
