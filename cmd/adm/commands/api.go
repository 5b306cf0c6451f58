// Package commands provides CLI commands for the operations tool.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"bandly/internal/api"
	"bandly/internal/observability"
	contextutils "bandly/internal/utils"

	"github.com/spf13/cobra"
)

// APICommands returns the scoring-API commands
func APICommands(client *api.Client, logger *observability.Logger, baseURL string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Scoring API commands",
		Long: `Commands for talking to the BandLy scoring API.

Available commands:
  health  - Check the scoring API health endpoint
  login   - Authenticate and print a bearer token
  report  - Fetch a stored analysis report by public ID
  stats   - Show back-office statistics (requires an admin token)`,
	}

	apiCmd.AddCommand(healthCmd(client, logger, baseURL))
	apiCmd.AddCommand(loginCmd(client, logger))
	apiCmd.AddCommand(reportCmd(client, logger))
	apiCmd.AddCommand(statsCmd(client, logger))

	return apiCmd
}

func healthCmd(client *api.Client, logger *observability.Logger, baseURL string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the scoring API health endpoint",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			logger.Info(ctx, "Checking scoring API health", map[string]interface{}{"base_url": baseURL})

			if err := client.Health(ctx); err != nil {
				fmt.Printf("UNHEALTHY %s: %v\n", baseURL, err)
				return contextutils.WrapError(err, "health check failed")
			}

			fmt.Printf("OK %s\n", baseURL)
			return nil
		},
	}
}

func loginCmd(client *api.Client, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Authenticate and print a bearer token",
		Long:  `Authenticate against the scoring API and print the issued bearer token. If email is not provided, you will be prompted for it.`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			var email string
			if len(args) > 0 {
				email = args[0]
			} else {
				fmt.Print("Enter email: ")
				if _, err := fmt.Scanln(&email); err != nil {
					return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to read email: %v", err)
				}
			}

			if email == "" {
				return contextutils.WrapError(contextutils.ErrMissingRequired, "email is required")
			}

			// Prompt for password securely
			fmt.Print("Enter password: ")
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to read password: %v", err)
			}
			fmt.Println() // New line after password input

			resp, err := client.Login(ctx, api.Credentials{Email: email, Password: string(passwordBytes)})
			if err != nil {
				logger.Error(ctx, "Login failed", err, map[string]interface{}{"email": email})
				return contextutils.WrapError(err, "login failed")
			}

			fmt.Println(resp.Token)
			return nil
		},
	}
}

func reportCmd(client *api.Client, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "report [publicId]",
		Short: "Fetch a stored analysis report by public ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := client.GetReport(ctx, args[0])
			if err != nil {
				logger.Error(ctx, "Failed to fetch report", err, map[string]interface{}{"public_id": args[0]})
				return contextutils.WrapErrorf(err, "failed to fetch report %s", args[0])
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return contextutils.WrapError(err, "failed to encode report")
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func statsCmd(client *api.Client, logger *observability.Logger) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show back-office statistics",
		Long:  `Show back-office statistics. Requires an admin bearer token, supplied via --token or the BANDLY_ADMIN_TOKEN environment variable.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			if token == "" {
				token = os.Getenv("BANDLY_ADMIN_TOKEN")
			}
			if token == "" {
				return contextutils.WrapError(contextutils.ErrMissingRequired, "admin token is required")
			}

			stats, err := client.GetAdminStats(ctx, token)
			if err != nil {
				logger.Error(ctx, "Failed to fetch stats", err, map[string]interface{}{"token": maskToken(token)})
				return contextutils.WrapError(err, "failed to fetch stats")
			}

			fmt.Printf("%-20s %d\n", "Total users", stats.TotalUsers)
			fmt.Printf("%-20s %d\n", "Total essays", stats.TotalEssays)
			fmt.Printf("%-20s %d\n", "Total feedback", stats.TotalFeedback)
			fmt.Printf("%-20s %d\n", "Blog posts", stats.PostsCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "admin bearer token")
	return cmd
}

// maskToken hides all but the edges of a bearer token for display
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
