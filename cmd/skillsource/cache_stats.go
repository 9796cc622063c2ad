package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/skillsource/internal/cache"
	"github.com/martin/skillsource/internal/observability"
)

var cacheStatsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Print statistics for a skill cache snapshot",
	RunE:  runCacheStats,
}

var cacheStatsFile string

func init() {
	cacheStatsCmd.Flags().StringVarP(&cacheStatsFile, "cache", "c", "skill_cache.json", "Path to skill cache snapshot")
	rootCmd.AddCommand(cacheStatsCmd)
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	snap, err := cache.LoadSnapshot(cacheStatsFile)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBuildSummary(snap)
	printer.PrintUnmatched(snap)
	return nil
}
