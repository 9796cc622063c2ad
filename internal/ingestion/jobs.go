// Package ingestion loads job records from exported JSON and extracts raw
// skill phrases from job-posting HTML.
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
)

// Job is one job record from the listings export. Skills holds the raw
// free-text phrases as scraped; StandardizedSkills is filled in by the
// pipeline.
type Job struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Company            string   `json:"company,omitempty"`
	Location           string   `json:"location,omitempty"`
	Description        string   `json:"description,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	StandardizedSkills []string `json:"standardized_skills,omitempty"`
}

// LoadJobs reads a JSON array of job records from path.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file %s: %w", path, err)
	}

	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file %s: %w", path, err)
	}
	return jobs, nil
}

// SaveJobs writes job records to path as indented JSON.
func SaveJobs(path string, jobs []Job) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write jobs file %s: %w", path, err)
	}
	return nil
}
