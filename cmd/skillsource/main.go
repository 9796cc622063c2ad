// Package main provides the skillsource CLI: batch tools that standardize
// free-text job skills against the O*NET taxonomy and maintain the skill
// cache consumed by the job board.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillsource",
	Short: "Skill standardization toolchain for the job board",
	Long:  "skillsource normalizes free-text skills from job postings, matches them against the O*NET occupational taxonomy, and maintains the skill cache served to the browsing UI.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
