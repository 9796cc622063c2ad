package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin/skillsource/internal/ingestion"
	"github.com/martin/skillsource/internal/pipeline"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract raw skill phrases from a job-posting HTML file",
	Long:  "Parses a saved job-posting HTML page, pulls the skill phrases out of its skills/requirements sections, and prints both the raw phrases and the cleaned candidates the cache build would see.",
	RunE:  runExtractSkills,
}

var extractSkillsHTML string

func init() {
	extractSkillsCmd.Flags().StringVar(&extractSkillsHTML, "html", "", "Path to job-posting HTML file (required)")

	if err := extractSkillsCmd.MarkFlagRequired("html"); err != nil {
		panic(fmt.Sprintf("failed to mark html flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(extractSkillsHTML)
	if err != nil {
		return fmt.Errorf("failed to read HTML file %s: %w", extractSkillsHTML, err)
	}

	raw, err := ingestion.ExtractSkills(string(data))
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No skill section found.")
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Raw phrases (%d):\n", len(raw))
	for _, phrase := range raw {
		_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", phrase)
	}

	candidates := pipeline.CleanCandidates(raw)
	_, _ = fmt.Fprintf(os.Stdout, "Candidates (%d):\n", len(candidates))
	for _, candidate := range candidates {
		_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", candidate)
	}
	return nil
}
