// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"ghreview/internal/gateway"
	"ghreview/internal/output"
	"ghreview/internal/usecase"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Analyzes a GitHub user's public profile and prints a heuristic review",
	Long: `Fetches the user's profile, repositories, per-repo languages and recent
push activity, derives aggregate metrics and prints a multi-paragraph review,
either as a formatted text report or as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		// Get other flags.
		user, _ := cmd.Flags().GetString("user")
		format, _ := cmd.Flags().GetString("format")
		nowStr, _ := cmd.Flags().GetString("now")
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			// Optional: absence means unauthenticated requests with a
			// lower rate limit.
			token = os.Getenv("GITHUB_TOKEN")
		}

		// The reference time is captured once and used for every
		// time-based figure in the run. --now pins it for reproducible
		// output.
		now := time.Now()
		if nowStr != "" {
			parsed, err := time.Parse(time.RFC3339, nowStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid --now value. Please use RFC3339 (e.g. 2026-08-31T12:00:00Z). Error: %v\n", err)
				os.Exit(1)
			}
			now = parsed
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		analyzer := usecase.NewAnalyzer(githubGateway, logger)

		analysis, err := analyzer.Analyze(ctx, user, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analysis failed: %s\n", gateway.UserMessage(err))
			os.Exit(1)
		}

		ui := output.New()
		if format == "json" {
			if err := ui.RenderJSON(analysis); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to render analysis: %v\n", err)
				os.Exit(1)
			}
			return
		}
		ui.RenderText(analysis)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.PersistentFlags().StringP("user", "u", "", "Target GitHub user name (required)")
	reviewCmd.MarkPersistentFlagRequired("user")
	reviewCmd.Flags().String("format", "text", "Output format: text or json")
	reviewCmd.Flags().String("token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	reviewCmd.Flags().String("now", "", "Reference time as RFC3339, for reproducible output")
}
