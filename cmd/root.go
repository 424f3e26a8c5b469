// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghreview",
	Short: "A CLI tool that reviews a public GitHub profile.",
	Long: `ghreview fetches a user's public GitHub data (profile, repositories,
languages, recent push activity), aggregates it into a small set of metrics
and synthesizes a heuristic multi-paragraph review of the profile.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// A .env file is optional; a missing one is not an error.
	_ = godotenv.Load()
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
