package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/wire"
)

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local users",
		Long:  `Register and inspect users in the local directory.`,
	}

	cmd.AddCommand(userAddCmd())
	cmd.AddCommand(userShowCmd())

	return cmd
}

func userAddCmd() *cobra.Command {
	var fullName string
	var avatar string

	cmd := &cobra.Command{
		Use:   "add [username]",
		Short: "Register a user",
		Long: `Register a user. Usernames are unique.

Examples:
  barter user add alice --name "Alice Moreau"
  barter user add bob --avatar avatars/bob.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.DirectoryAdapter().AddUser(cmd.Context(), args[0], fullName, avatar)
			return err
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar reference")

	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			_, err = wire.DirectoryAdapter().ShowUser(cmd.Context(), userID)
			return err
		},
	}
}

// OfferCmd returns the offer command
func OfferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Manage local offers",
		Long:  `List, inspect and unlist offers that messages can refer to.`,
	}

	cmd.AddCommand(offerAddCmd())
	cmd.AddCommand(offerShowCmd())
	cmd.AddCommand(offerDeactivateCmd())

	return cmd
}

func offerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [title...]",
		Short: "List an offer owned by the acting user",
		Long: `List an offer owned by the acting user.

Examples:
  barter offer add --as 2 Road bike, 54cm frame`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := currentUser()
			if err != nil {
				return err
			}
			_, err = wire.DirectoryAdapter().AddOffer(cmd.Context(), userID, strings.Join(args, " "))
			return err
		},
	}
}

func offerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [offer-id]",
		Short: "Show offer details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offerID, err := parseID("offer", args[0])
			if err != nil {
				return err
			}
			_, err = wire.DirectoryAdapter().ShowOffer(cmd.Context(), offerID)
			return err
		},
	}
}

func offerDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [offer-id]",
		Short: "Unlist an offer",
		Long: `Unlist an offer. Messages that already refer to it keep the reference;
new messages can no longer be tied to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offerID, err := parseID("offer", args[0])
			if err != nil {
				return err
			}
			return wire.DirectoryAdapter().DeactivateOffer(cmd.Context(), offerID)
		},
	}
}
