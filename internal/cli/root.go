/*
PURPOSE:
  Defines the root Cobra command for the dexview CLI.
  Handles global flags, configuration loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Every subcommand needs the same loaded config, so it is resolved in PersistentPreRunE.
  - Ctrl-C must cancel in-flight upstream requests and stop the server.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/dexview/main.go
  - Calls: Child commands (list, show, serve, functions)
  - Modifies: package-level cfg (loaded once per invocation).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Precedence: flags > env (DEX_*) > config file > defaults.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and applyGlobalOverrides().

RELATED FILES:
  - cmd/dexview/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dexview/internal/config"
	"github.com/daryltucker/dexview/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile         string
	apiBaseOverride string
	logLevel        string
	logFormat       string

	// cfg is resolved by PersistentPreRunE before any subcommand runs.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "dexview",
		Short: "Browse the creature catalog of a public data API",
		Long: `dexview lists catalog entries with their artwork and types, searches them by name,
and shows the full record of a single entry. Run 'serve' to expose the same views
as a JSON API for a browser front end.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}
)

// Execute executes the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dexview.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseOverride, "api-base", "", "Base URL of the catalog API (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if apiBaseOverride != "" {
		loaded.APIBase = apiBaseOverride
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	if err := output.Configure(cmd.ErrOrStderr(), loaded.LogLevel, loaded.LogFormat); err != nil {
		return err
	}

	cfg = loaded
	return nil
}
