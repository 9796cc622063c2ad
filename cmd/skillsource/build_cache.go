package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/martin/skillsource/internal/cache"
	"github.com/martin/skillsource/internal/config"
	"github.com/martin/skillsource/internal/ingestion"
	"github.com/martin/skillsource/internal/match"
	"github.com/martin/skillsource/internal/observability"
	"github.com/martin/skillsource/internal/pipeline"
	"github.com/martin/skillsource/internal/ratelimit"
	"github.com/martin/skillsource/internal/taxonomy"
)

var buildCacheCmd = &cobra.Command{
	Use:   "build-cache",
	Short: "Build the skill cache snapshot from a jobs export",
	Long:  "Collects every raw skill phrase from a jobs JSON export, cleans and deduplicates them, resolves each against the O*NET taxonomy, and writes the resulting cache snapshot. Previously resolved skills are reused from the store instead of re-queried.",
	RunE:  runBuildCache,
}

var (
	buildCacheJobs    string
	buildCacheOut     string
	buildCacheStore   string
	buildCacheVerbose bool
)

func init() {
	buildCacheCmd.Flags().StringVarP(&buildCacheJobs, "jobs", "j", "", "Path to jobs JSON export (required)")
	buildCacheCmd.Flags().StringVarP(&buildCacheOut, "out", "o", "skill_cache.json", "Path to output snapshot file")
	buildCacheCmd.Flags().StringVar(&buildCacheStore, "store", "", "Path to incremental store file (defaults to in-memory)")
	buildCacheCmd.Flags().BoolVarP(&buildCacheVerbose, "verbose", "v", false, "Print build summary")

	if err := buildCacheCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(buildCacheCmd)
}

func runBuildCache(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.OnetAPIKey == "" {
		return fmt.Errorf("O*NET API key is required (config onet_api_key or ONET_API_KEY)")
	}

	// 1. Collect and clean candidates from the jobs export
	jobs, err := ingestion.LoadJobs(buildCacheJobs)
	if err != nil {
		return err
	}
	candidates := pipeline.CleanCandidates(pipeline.CollectRawSkills(jobs))
	if len(candidates) == 0 {
		return fmt.Errorf("no valid skill candidates found in %s", buildCacheJobs)
	}

	// 2. Wire up the taxonomy client
	interval := time.Duration(cfg.RequestIntervalMS) * time.Millisecond
	limiter := ratelimit.NewIntervalLimiter(interval)

	var responseCache *taxonomy.ResponseCache
	if cfg.ResponseCacheDir != "" {
		responseCache, err = taxonomy.NewResponseCache(cfg.ResponseCacheDir, taxonomy.DefaultResponseTTL)
		if err != nil {
			return fmt.Errorf("failed to open response cache: %w", err)
		}
	}

	opts := taxonomy.DefaultOptions()
	opts.APIKey = cfg.OnetAPIKey
	client, err := taxonomy.NewClient(opts, limiter, responseCache)
	if err != nil {
		return err
	}

	matcher := match.New(client, match.Config{
		Threshold:     cfg.MatchThreshold,
		PriorityBoost: cfg.PriorityBoost,
	})

	// 3. Pick the store: postgres when configured, file when given, else memory
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Build and persist the snapshot
	snap, err := cache.NewBuilder(store, matcher).Build(ctx, candidates)
	if err != nil {
		return fmt.Errorf("cache build failed: %w", err)
	}
	if err := snap.Save(buildCacheOut); err != nil {
		return err
	}

	if buildCacheVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintBuildSummary(snap)
		printer.PrintUnmatched(snap)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Built skill cache with %d skills (%s matched) to %s\n",
		snap.Stats.TotalSkills, snap.Stats.MatchRate, buildCacheOut)
	return nil
}

// openStore selects the record store for the build. Precedence: postgres,
// file, in-memory.
func openStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := cache.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	if buildCacheStore != "" {
		fs, err := cache.NewFileStore(buildCacheStore)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
	return cache.NewMemoryStore(), func() {}, nil
}
