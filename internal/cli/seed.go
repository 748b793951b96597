package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/db"
	"github.com/example/barter/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo marketplace into an empty database",
		Long: `Load three users (alice=1, bob=2, carol=3), two offers and a few
conversations into an empty database.

Examples:
  barter seed
  barter dialogs --as 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(wire.DB()); err != nil {
				return err
			}
			fmt.Println("✓ Demo marketplace loaded (users 1-3, offers 42-43)")
			return nil
		},
	}
}
