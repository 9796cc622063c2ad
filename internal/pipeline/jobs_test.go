package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/skillsource/internal/cache"
	"github.com/martin/skillsource/internal/ingestion"
	"github.com/martin/skillsource/internal/taxonomy"
)

func TestProcessJobs(t *testing.T) {
	p := New(snapshotWith(map[string]cache.Record{
		"welding": {Normalized: "welding", Taxonomy: &taxonomy.Entry{ID: "s1", Name: "Welding"}},
	}))

	jobs := []ingestion.Job{
		{ID: "job-1", Skills: []string{"excellent welding", "blueprint reading"}},
		{ID: "job-2", Skills: []string{"WELDING"}},
		{ID: "job-3"},
	}

	require.NoError(t, p.ProcessJobs(context.Background(), jobs, 2))

	assert.Equal(t, []string{"Welding", "blueprint reading"}, jobs[0].StandardizedSkills)
	assert.Equal(t, []string{"Welding"}, jobs[1].StandardizedSkills)
	assert.Empty(t, jobs[2].StandardizedSkills)
}

func TestProcessJobs_ManyJobsDefaultWorkers(t *testing.T) {
	p := New(snapshotWith(map[string]cache.Record{}))

	jobs := make([]ingestion.Job, 100)
	for i := range jobs {
		jobs[i] = ingestion.Job{Skills: []string{"welding experience"}}
	}

	require.NoError(t, p.ProcessJobs(context.Background(), jobs, 0))
	for _, job := range jobs {
		assert.Equal(t, []string{"welding experience"}, job.StandardizedSkills)
	}
}

func TestAggregateSkills(t *testing.T) {
	jobs := []ingestion.Job{
		{StandardizedSkills: []string{"Welding", "blueprint reading"}},
		{StandardizedSkills: []string{"welding", "Rigging"}},
	}

	assert.Equal(t, []string{"Welding", "blueprint reading", "Rigging"}, AggregateSkills(jobs))
}

func TestCollectRawSkills(t *testing.T) {
	jobs := []ingestion.Job{
		{Skills: []string{"a", "b"}},
		{},
		{Skills: []string{"b", "c"}},
	}

	assert.Equal(t, []string{"a", "b", "b", "c"}, CollectRawSkills(jobs))
}
