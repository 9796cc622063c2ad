package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/skillsource/internal/cache"
	"github.com/martin/skillsource/internal/config"
	"github.com/martin/skillsource/internal/ingestion"
	"github.com/martin/skillsource/internal/pipeline"
)

var processJobsCmd = &cobra.Command{
	Use:   "process-jobs",
	Short: "Attach standardized skills to every job in an export",
	Long:  "Loads a jobs JSON export and the skill cache snapshot, standardizes each job's skill list through the pipeline (cache-only, no remote calls), and writes the updated export.",
	RunE:  runProcessJobs,
}

var (
	processJobsInput   string
	processJobsCache   string
	processJobsOut     string
	processJobsWorkers int
)

func init() {
	processJobsCmd.Flags().StringVarP(&processJobsInput, "jobs", "j", "", "Path to jobs JSON export (required)")
	processJobsCmd.Flags().StringVarP(&processJobsCache, "cache", "c", "skill_cache.json", "Path to skill cache snapshot")
	processJobsCmd.Flags().StringVarP(&processJobsOut, "out", "o", "", "Path to output file (required)")
	processJobsCmd.Flags().IntVarP(&processJobsWorkers, "workers", "w", 0, "Concurrent jobs (0 = default)")

	for _, flag := range []string{"jobs", "out"} {
		if err := processJobsCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(processJobsCmd)
}

func runProcessJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	jobs, err := ingestion.LoadJobs(processJobsInput)
	if err != nil {
		return err
	}

	// A corrupt snapshot is fatal: better no skills than wrong skills.
	snap, err := cache.LoadSnapshot(processJobsCache)
	if err != nil {
		return fmt.Errorf("refusing to process jobs: %w", err)
	}

	workers := processJobsWorkers
	if workers == 0 {
		workers = cfg.Workers
	}
	if err := pipeline.New(snap).ProcessJobs(cmd.Context(), jobs, workers); err != nil {
		return err
	}

	if err := ingestion.SaveJobs(processJobsOut, jobs); err != nil {
		return err
	}

	unique := pipeline.AggregateSkills(jobs)
	_, _ = fmt.Fprintf(os.Stdout, "Processed %d jobs (%d unique skills) to %s\n",
		len(jobs), len(unique), processJobsOut)
	return nil
}
