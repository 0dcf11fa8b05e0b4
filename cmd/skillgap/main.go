// Package main provides the entry point for the skill-gap advisor CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath string
	rootVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "skillgap",
	Short: "Resume skill-gap advisor",
	Long: `skillgap extracts skills from a resume, matches them against a job role's
required skills, ranks what is missing, and builds a 12-week learning plan.

Configuration can be loaded from a JSON file using --config. Environment
variables override the file, and command-line flags override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
