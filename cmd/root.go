package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/bocleaner/internal/config"
	"github.com/fakeyudi/bocleaner/internal/logging"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// logger writes diagnostics to the command's stderr.
var logger = logging.Discard()

var (
	logLevelFlag string
	rulesFlag    string
)

var rootCmd = &cobra.Command{
	Use:          "bocleaner",
	Short:        "Turn hand-written build-order logs into clean, numbered timelines",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// Flags win over both config files.
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}
		if rulesFlag != "" {
			cfg.RulesFile = rulesFlag
		}

		logger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel), "")
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rulesFlag, "rules", "", "YAML rules overlay (overrides config)")
}
