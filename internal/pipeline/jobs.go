package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/martin/skillsource/internal/ingestion"
)

// DefaultWorkers bounds concurrent job processing. Cache-only processing
// is CPU-trivial; the bound mostly protects against pathological corpora.
const DefaultWorkers = 8

// ProcessJobs standardizes the skill list of every job in place using the
// cache only. Jobs are independent; they are processed concurrently but
// each job's skill order is preserved.
func (p *Pipeline) ProcessJobs(ctx context.Context, jobs []ingestion.Job, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			job.StandardizedSkills = p.Process(job.Skills)
			return nil
		})
	}
	return g.Wait()
}

// AggregateSkills collects the unique standardized skills across a corpus,
// case-insensitively, in first-seen job order.
func AggregateSkills(jobs []ingestion.Job) []string {
	var all []string
	for _, job := range jobs {
		all = append(all, job.StandardizedSkills...)
	}
	return dedupe(all)
}

// CollectRawSkills gathers every raw skill phrase across a corpus, in job
// order, for the cache build process.
func CollectRawSkills(jobs []ingestion.Job) []string {
	var all []string
	for _, job := range jobs {
		all = append(all, job.Skills...)
	}
	return all
}
