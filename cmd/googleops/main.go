package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acidni/googleops/cmd/googleops/commands"
	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
		timeoutMs  int
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "googleops",
		Short: "Manage Google Analytics 4 and sibling Google services",
		Long: `googleops drives GA4 admin operations (accounts, properties, data streams,
reports) through the google-cli.py admin script, stores secrets like
measurement IDs in a vault, and can serve the whole surface as an HTTP API.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			// Update config with parsed values
			cfg.Path = configFile
			cfg.Logger = logger
			cfg.TimeoutMs = timeoutMs
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default \"googleops.yaml\" when present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&timeoutMs, "timeout", 0, "Per-command timeout in milliseconds (0 = none)")

	// Add commands
	rootCmd.AddCommand(
		commands.NewAccountsCommand(cfg),
		commands.NewPropertiesCommand(cfg),
		commands.NewStreamsCommand(cfg),
		commands.NewReportCommand(cfg),
		commands.NewAudiencesCommand(cfg),
		commands.NewCustomCommand(cfg),
		commands.NewSecretCommand(cfg),
		commands.NewSetupCommand(cfg),
		commands.NewAPIsCommand(cfg),
		commands.NewServeCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
