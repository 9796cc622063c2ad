package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/skillsource/internal/config"
	"github.com/martin/skillsource/internal/enhance"
	"github.com/martin/skillsource/internal/ingestion"
)

var enhanceJobsCmd = &cobra.Command{
	Use:   "enhance-jobs",
	Short: "Rewrite terse job descriptions with an LLM",
	Long:  "Loads a jobs JSON export and rewrites each job's description through the configured enhancer. Per-job failures keep the original description and are reported as warnings.",
	RunE:  runEnhanceJobs,
}

var (
	enhanceJobsInput string
	enhanceJobsOut   string
	enhanceJobsModel string
)

func init() {
	enhanceJobsCmd.Flags().StringVarP(&enhanceJobsInput, "jobs", "j", "", "Path to jobs JSON export (required)")
	enhanceJobsCmd.Flags().StringVarP(&enhanceJobsOut, "out", "o", "", "Path to output file (required)")
	enhanceJobsCmd.Flags().StringVarP(&enhanceJobsModel, "model", "m", "", "Gemini model override")

	for _, flag := range []string{"jobs", "out"} {
		if err := enhanceJobsCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(enhanceJobsCmd)
}

func runEnhanceJobs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (config gemini_api_key or GEMINI_API_KEY)")
	}

	model := enhanceJobsModel
	if model == "" {
		model = cfg.GeminiModel
	}
	enhancer, err := enhance.NewGeminiEnhancer(ctx, cfg.GeminiAPIKey, model)
	if err != nil {
		return err
	}
	defer func() { _ = enhancer.Close() }()

	jobs, err := ingestion.LoadJobs(enhanceJobsInput)
	if err != nil {
		return err
	}

	enhanced := 0
	for i := range jobs {
		job := &jobs[i]
		rewritten, err := enhancer.Enhance(ctx, job.Title, job.Description)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, _ = fmt.Fprintf(os.Stderr, "Warning: enhancement failed for job %s: %v\n", job.ID, err)
			continue
		}
		if rewritten != job.Description {
			job.Description = rewritten
			enhanced++
		}
	}

	if err := ingestion.SaveJobs(enhanceJobsOut, jobs); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Enhanced %d of %d job descriptions to %s\n", enhanced, len(jobs), enhanceJobsOut)
	return nil
}
