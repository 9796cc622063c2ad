package cache

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/martin/skillsource/internal/schemas"
	"github.com/martin/skillsource/internal/taxonomy"
)

// SnapshotVersion is the persisted snapshot format version.
const SnapshotVersion = "1.0"

//go:embed skill_cache.schema.json
var snapshotSchema []byte

// Stats summarizes a build: how many unique skills were processed and how
// many resolved to a taxonomy entry.
type Stats struct {
	TotalSkills int    `json:"total_skills"`
	Matched     int    `json:"onet_matched"`
	Unmatched   int    `json:"unmatched"`
	MatchRate   string `json:"match_rate"`
}

// Snapshot is the persisted form of the skill cache: one JSON document
// holding every record plus build metadata. Once built it is read-only;
// rebuilds overwrite it wholesale.
type Snapshot struct {
	Version     string            `json:"version"`
	GeneratedAt time.Time         `json:"generatedAt"`
	BuildID     uuid.UUID         `json:"buildId"`
	Stats       Stats             `json:"stats"`
	Cache       map[string]Record `json:"cache"`
}

// Get looks up a record by skill text, case-insensitively.
func (s *Snapshot) Get(skill string) (*Record, bool) {
	rec, ok := s.Cache[Key(skill)]
	if !ok {
		return nil, false
	}
	return &rec, true
}

// Save writes the snapshot to path as indented JSON.
func (s *Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}
	return nil
}

// SnapshotError reports a snapshot that could not be loaded. Consumers
// must treat it as fatal: serving skills from a corrupt cache would leak
// unvalidated garbage downstream.
type SnapshotError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot %s: %s", e.Path, e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// LoadSnapshot reads and validates a snapshot file. Any deviation from the
// schema fails closed with a *SnapshotError; the operator must rebuild.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Message: "unreadable", Cause: err}
	}

	if err := schemas.ValidateBytes(snapshotSchema, data); err != nil {
		return nil, &SnapshotError{Path: path, Message: "schema validation failed", Cause: err}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &SnapshotError{Path: path, Message: "malformed JSON", Cause: err}
	}
	if snap.Cache == nil {
		snap.Cache = make(map[string]Record)
	}
	return &snap, nil
}

// Matcher is the slice of the fuzzy matcher the builder needs.
type Matcher interface {
	Match(ctx context.Context, candidate string) (*taxonomy.Entry, error)
}

// Builder runs the offline batch build: for every unique candidate not
// already in the store it consults the matcher and records the outcome,
// match or explicit miss. One builder run at a time; the store is the
// write side, pipeline consumers read the resulting snapshot.
type Builder struct {
	store   Store
	matcher Matcher
}

// NewBuilder creates a Builder over a store and matcher.
func NewBuilder(store Store, matcher Matcher) *Builder {
	return &Builder{store: store, matcher: matcher}
}

// Build resolves all candidates and returns the resulting snapshot.
// Already-cached candidates are not re-looked-up. Transient lookup
// failures degrade to explicit misses; terminal failures (auth,
// cancellation) abort the build.
func (b *Builder) Build(ctx context.Context, candidates []string) (*Snapshot, error) {
	snap := &Snapshot{
		Version:     SnapshotVersion,
		GeneratedAt: time.Now().UTC(),
		BuildID:     uuid.New(),
		Cache:       make(map[string]Record),
	}

	seen := make(map[string]bool)
	for _, candidate := range candidates {
		key := Key(candidate)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		rec, ok, err := b.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("cache lookup for %q failed: %w", key, err)
		}
		if ok {
			snap.Cache[key] = *rec
			continue
		}

		entry, err := b.matcher.Match(ctx, candidate)
		if err != nil {
			if taxonomy.IsTerminal(err) || ctx.Err() != nil {
				return nil, fmt.Errorf("build aborted at %q: %w", candidate, err)
			}
			// Exhausted transient failure: record an explicit miss so the
			// next build does not hammer the same dead lookup.
			entry = nil
		}

		newRec := Record{Normalized: key, Taxonomy: entry}
		if err := b.store.Set(ctx, key, newRec); err != nil {
			return nil, fmt.Errorf("cache write for %q failed: %w", key, err)
		}
		snap.Cache[key] = newRec
	}

	snap.Stats = computeStats(snap.Cache)
	return snap, nil
}

func computeStats(records map[string]Record) Stats {
	stats := Stats{TotalSkills: len(records)}
	for _, rec := range records {
		if rec.Taxonomy != nil {
			stats.Matched++
		} else {
			stats.Unmatched++
		}
	}
	if stats.TotalSkills > 0 {
		stats.MatchRate = fmt.Sprintf("%.1f%%", float64(stats.Matched)/float64(stats.TotalSkills)*100)
	} else {
		stats.MatchRate = "0.0%"
	}
	return stats
}
