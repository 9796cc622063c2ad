// Package pipeline orchestrates skill standardization: normalize, split,
// validate, deduplicate, then resolve each surviving candidate against the
// skill cache or, on miss, the live matcher.
package pipeline

import (
	"context"
	"strings"

	"github.com/martin/skillsource/internal/cache"
	"github.com/martin/skillsource/internal/normalize"
)

// Pipeline resolves raw skill phrases to canonical skill names. The
// snapshot is consulted read-only; a nil snapshot degrades every lookup to
// the normalized text. The matcher is only used by ProcessWithRemote and
// may be nil for cache-only consumers.
type Pipeline struct {
	snap    *cache.Snapshot
	matcher cache.Matcher
}

// New creates a cache-only pipeline.
func New(snap *cache.Snapshot) *Pipeline {
	return &Pipeline{snap: snap}
}

// NewWithMatcher creates a pipeline that falls through to a live taxonomy
// match when the cache misses.
func NewWithMatcher(snap *cache.Snapshot, matcher cache.Matcher) *Pipeline {
	return &Pipeline{snap: snap, matcher: matcher}
}

// CleanCandidates runs the pure half of the pipeline: normalize each raw
// phrase, split compounds, validate, and deduplicate case-insensitively
// preserving first-seen order. The result is what the cache build process
// feeds the matcher.
func CleanCandidates(rawSkills []string) []string {
	var candidates []string
	seen := make(map[string]bool)

	for _, raw := range rawSkills {
		normalized, ok := normalize.Normalize(raw)
		if !ok {
			continue
		}
		for _, candidate := range normalize.Split(normalized) {
			if !normalize.IsValid(candidate) {
				continue
			}
			key := strings.ToLower(candidate)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// Process standardizes raw skill phrases using the cache only. Cache
// misses fall back to the normalized text, so the output never contains
// raw unvalidated input. Output preserves first-occurrence order and is
// never longer than the input.
func (p *Pipeline) Process(rawSkills []string) []string {
	candidates := CleanCandidates(rawSkills)

	resolved := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		resolved = append(resolved, p.resolveCached(candidate))
	}
	return dedupe(resolved)
}

// ProcessWithRemote standardizes raw skill phrases, consulting the live
// matcher on cache miss. Per-candidate failures degrade to the normalized
// text; only context cancellation aborts.
func (p *Pipeline) ProcessWithRemote(ctx context.Context, rawSkills []string) ([]string, error) {
	candidates := CleanCandidates(rawSkills)

	resolved := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		name, hit := p.lookupCached(candidate)
		if !hit && p.matcher != nil {
			entry, err := p.matcher.Match(ctx, candidate)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// Degrade to the normalized candidate text.
			} else if entry != nil {
				name = entry.Name
			}
		}
		resolved = append(resolved, name)
	}
	return dedupe(resolved), nil
}

// resolveCached returns the canonical name for a candidate from the cache,
// or the candidate itself on miss or cached miss.
func (p *Pipeline) resolveCached(candidate string) string {
	name, _ := p.lookupCached(candidate)
	return name
}

// lookupCached returns the display name for a candidate and whether the
// cache had a record with a taxonomy entry.
func (p *Pipeline) lookupCached(candidate string) (string, bool) {
	if p.snap == nil {
		return candidate, false
	}
	rec, ok := p.snap.Get(candidate)
	if !ok {
		return candidate, false
	}
	if rec.Taxonomy == nil {
		// A cached miss is authoritative: the remote was already consulted.
		return candidate, true
	}
	return rec.Taxonomy.Name, true
}

// dedupe removes case-insensitive duplicates preserving first-seen order.
func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
