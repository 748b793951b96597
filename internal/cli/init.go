package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/config"
	"github.com/example/barter/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the barter database and config",
		Long: `Initialize the barter database with the required schema and write a
default config file if none exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			fmt.Printf("Initializing barter database at %s\n", cfg.DBPath)

			// Opening the database applies the schema and pending migrations
			if err := wire.DB().PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if err := config.SaveConfig(path, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  barter user add alice")
			fmt.Println("  barter seed            # or load the demo marketplace")
			fmt.Println("  barter serve")
			return nil
		},
	}
}
