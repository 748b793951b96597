package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/cli"
	"github.com/example/barter/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "barter",
		Short:   "barter - direct messaging for a goods-exchange marketplace",
		Version: version.String(),
		Long: `barter lets marketplace users exchange direct messages, optionally about
an offer, and keeps track of what each of them has read.`,
		PersistentPreRunE: cli.Bootstrap,
		SilenceUsage:      true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	// Messaging
	rootCmd.AddCommand(cli.SendCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.PollCmd())
	rootCmd.AddCommand(cli.ReadCmd())
	rootCmd.AddCommand(cli.DeleteCmd())
	rootCmd.AddCommand(cli.ClearCmd())
	rootCmd.AddCommand(cli.DialogsCmd())
	rootCmd.AddCommand(cli.UnreadCmd())

	// Directory
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.OfferCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
