// Package main provides the entry point for the BandLy operations CLI.
package main

import (
	"fmt"
	"os"

	"bandly/cmd/adm/commands"
	"bandly/internal/api"
	"bandly/internal/config"
	"bandly/internal/observability"

	"github.com/spf13/cobra"
)

// Global variables for shared resources
var (
	cfg    *config.Config
	logger *observability.Logger
	client *api.Client
)

func main() {
	// Set default config file if not already set
	if os.Getenv("BANDLY_CONFIG_FILE") == "" {
		// Try to find the config file in common locations
		defaultPaths := []string{
			"../config.yaml",    // From cmd/adm/
			"../../config.yaml", // From cmd/adm/ (alternative)
			"config.yaml",       // Current directory
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := os.Setenv("BANDLY_CONFIG_FILE", path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to set BANDLY_CONFIG_FILE environment variable: %v\n", err)
					os.Exit(1)
				}
				break
			}
		}
	}

	// Load configuration
	var err error
	cfg, err = config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override log level for the CLI
	cfg.Server.LogLevel = "error"

	// Disable all OpenTelemetry features for the CLI to avoid connection errors
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, loggerInstance, err := observability.SetupObservability(&cfg.OpenTelemetry, "bandly-adm")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	// Store logger globally
	logger = loggerInstance

	client = api.NewClient(cfg, logger)

	// Create the root command
	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "BandLy Operations Tool",
		Long: `BandLy Operations Tool

A CLI for operating the BandLy web front-end. Provides commands for
checking the scoring API, fetching reports, and inspecting the
feedback prompt policy.`,

		Run: func(cmd *cobra.Command, _ []string) {
			// Show help if no subcommand provided
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	// Add subcommands with initialized services
	rootCmd.AddCommand(commands.APICommands(client, logger, cfg.APIBaseURL()))
	rootCmd.AddCommand(commands.FeedbackCommands(cfg, logger))

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
