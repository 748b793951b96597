package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/barter/internal/config"
	"github.com/example/barter/internal/logger"
	"github.com/example/barter/internal/wire"
)

// EnvUser names the acting user when --as is not given.
const EnvUser = "BARTER_USER"

var (
	configPath string
	actingUser int64
)

// AddGlobalFlags registers the persistent flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.barter/config.yaml)")
	cmd.PersistentFlags().Int64Var(&actingUser, "as", 0, "act as this user ID (defaults to $"+EnvUser+")")
}

// Bootstrap loads configuration and initializes logging before a command runs.
func Bootstrap(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	wire.Configure(cfg)
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// currentUser resolves the acting user from --as or the environment.
func currentUser() (int64, error) {
	if actingUser > 0 {
		return actingUser, nil
	}
	raw := strings.TrimSpace(os.Getenv(EnvUser))
	if raw == "" {
		return 0, fmt.Errorf("no acting user: pass --as <user-id> or set %s", EnvUser)
	}
	id, err := parseID("user", raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", EnvUser, err)
	}
	return id, nil
}

// parseID parses a positive numeric ID named kind.
func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q: must be a positive number", kind, raw)
	}
	return id, nil
}

// parseIDs parses message IDs given as separate or comma-separated arguments.
func parseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID("message", part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one message ID is required")
	}
	return ids, nil
}
