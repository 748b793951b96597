package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/wire"
)

// SendCmd returns the send command
func SendCmd() *cobra.Command {
	var to int64
	var offer int64

	cmd := &cobra.Command{
		Use:   "send [text...]",
		Short: "Send a message to another user",
		Long: `Send a direct message, optionally about one of the recipient's offers.
A reference to an offer that is no longer listed is dropped.

Examples:
  barter send --as 1 --to 2 "Is the bike still available?"
  barter send --as 1 --to 2 --offer 42 Interested in your bike`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}

			var offerID *int64
			if cmd.Flags().Changed("offer") {
				offerID = &offer
			}

			_, err = wire.MessageAdapter().Send(cmd.Context(), userID, to, strings.Join(args, " "), offerID)
			return err
		},
	}

	cmd.Flags().Int64Var(&to, "to", 0, "recipient user ID (required)")
	cmd.Flags().Int64Var(&offer, "offer", 0, "offer the message is about")
	cmd.MarkFlagRequired("to")

	return cmd
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var page int
	var pageSize int
	var peek bool

	cmd := &cobra.Command{
		Use:   "history [partner-id]",
		Short: "Show a conversation",
		Long: `Show one page of the conversation with another user, oldest first.
Viewing a page marks the messages you received on it as read unless --peek is set.

Examples:
  barter history 2 --as 1
  barter history 2 --as 1 --page 2 --page-size 20
  barter history 2 --as 1 --peek`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			partnerID, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().History(cmd.Context(), userID, partnerID, page, pageSize, !peek)
			return err
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "messages per page (default from config)")
	cmd.Flags().BoolVar(&peek, "peek", false, "do not mark messages as read")

	return cmd
}

// PollCmd returns the poll command
func PollCmd() *cobra.Command {
	var after int64

	cmd := &cobra.Command{
		Use:   "poll [partner-id]",
		Short: "Show messages newer than a cursor",
		Long: `Show the messages of a conversation with an ID greater than --after and
mark the ones you received as read.

Examples:
  barter poll 2 --as 1 --after 17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			partnerID, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().Poll(cmd.Context(), userID, partnerID, after)
			return err
		},
	}

	cmd.Flags().Int64Var(&after, "after", 0, "last message ID already seen")

	return cmd
}

// ReadCmd returns the read command
func ReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [message-id...]",
		Short: "Mark messages as read",
		Long: `Mark messages addressed to you as read. Other IDs are ignored.

Examples:
  barter read 3 4 5 --as 2
  barter read 3,4,5 --as 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().MarkRead(cmd.Context(), ids, userID)
			return err
		},
	}
}

// DeleteCmd returns the delete command
func DeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [message-id]",
		Short: "Delete a message you sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			messageID, err := parseID("message", args[0])
			if err != nil {
				return err
			}

			return wire.MessageAdapter().Delete(cmd.Context(), messageID, userID)
		},
	}
}

// ClearCmd returns the clear command
func ClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [partner-id]",
		Short: "Erase a whole conversation",
		Long: `Erase every message exchanged with another user, for both participants.

Examples:
  barter clear 2 --as 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			partnerID, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().Clear(cmd.Context(), userID, partnerID)
			return err
		},
	}
}

// DialogsCmd returns the dialogs command
func DialogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialogs",
		Short: "List your conversations",
		Long: `List your conversations, most recently active first, with the last
message and the number of unread messages from each partner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().Dialogs(cmd.Context(), userID)
			return err
		},
	}
}

// UnreadCmd returns the unread command
func UnreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Show your unread message count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}

			_, err = wire.MessageAdapter().Unread(cmd.Context(), userID)
			return err
		},
	}
}
