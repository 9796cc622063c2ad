package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/skillsource/internal/taxonomy"
)

// scriptedMatcher resolves candidates from a fixed table and counts calls.
type scriptedMatcher struct {
	entries map[string]*taxonomy.Entry
	errs    map[string]error
	calls   int
}

func (m *scriptedMatcher) Match(_ context.Context, candidate string) (*taxonomy.Entry, error) {
	m.calls++
	if err, ok := m.errs[candidate]; ok {
		return nil, err
	}
	return m.entries[candidate], nil
}

func TestBuilder_Build(t *testing.T) {
	matcher := &scriptedMatcher{
		entries: map[string]*taxonomy.Entry{
			"welding": weldingEntry(),
		},
	}
	builder := NewBuilder(NewMemoryStore(), matcher)

	snap, err := builder.Build(context.Background(), []string{"welding", "thingamajig"})
	require.NoError(t, err)

	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", snap.BuildID.String())
	assert.Equal(t, 2, snap.Stats.TotalSkills)
	assert.Equal(t, 1, snap.Stats.Matched)
	assert.Equal(t, 1, snap.Stats.Unmatched)
	assert.Equal(t, "50.0%", snap.Stats.MatchRate)

	rec, ok := snap.Get("Welding")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "Welding", rec.Taxonomy.Name)

	rec, ok = snap.Get("thingamajig")
	require.True(t, ok)
	assert.Nil(t, rec.Taxonomy, "misses are recorded explicitly")
}

func TestBuilder_SkipsCachedCandidates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "welding", Record{Normalized: "welding", Taxonomy: weldingEntry()}))

	matcher := &scriptedMatcher{}
	snap, err := NewBuilder(store, matcher).Build(ctx, []string{"Welding", "welding"})
	require.NoError(t, err)

	assert.Zero(t, matcher.calls, "cached candidates must not hit the remote")
	assert.Equal(t, 1, snap.Stats.TotalSkills)
	assert.Equal(t, 1, snap.Stats.Matched)
}

func TestBuilder_DeduplicatesCandidates(t *testing.T) {
	matcher := &scriptedMatcher{entries: map[string]*taxonomy.Entry{"welding": weldingEntry()}}
	snap, err := NewBuilder(NewMemoryStore(), matcher).Build(context.Background(),
		[]string{"welding", "WELDING", "  welding  ", ""})
	require.NoError(t, err)

	assert.Equal(t, 1, matcher.calls)
	assert.Equal(t, 1, snap.Stats.TotalSkills)
}

func TestBuilder_TransientFailureRecordsMiss(t *testing.T) {
	matcher := &scriptedMatcher{
		errs: map[string]error{
			"welding": &taxonomy.Error{Op: "search", Message: "HTTP status 503", Retryable: true},
		},
	}
	snap, err := NewBuilder(NewMemoryStore(), matcher).Build(context.Background(), []string{"welding"})
	require.NoError(t, err)

	rec, ok := snap.Get("welding")
	require.True(t, ok)
	assert.Nil(t, rec.Taxonomy)
	assert.Equal(t, 1, snap.Stats.Unmatched)
}

func TestBuilder_TerminalFailureAborts(t *testing.T) {
	matcher := &scriptedMatcher{
		errs: map[string]error{
			"welding": &taxonomy.Error{Op: "search", Message: "HTTP status 401", Terminal: true},
		},
	}
	_, err := NewBuilder(NewMemoryStore(), matcher).Build(context.Background(), []string{"welding"})
	require.Error(t, err)
	assert.True(t, taxonomy.IsTerminal(err))
}

func TestSnapshot_SaveAndLoad(t *testing.T) {
	matcher := &scriptedMatcher{entries: map[string]*taxonomy.Entry{"welding": weldingEntry()}}
	snap, err := NewBuilder(NewMemoryStore(), matcher).Build(context.Background(), []string{"welding", "rigging"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "skill_cache.json")
	require.NoError(t, snap.Save(path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, loaded.Version)
	assert.Equal(t, snap.BuildID, loaded.BuildID)
	assert.Equal(t, snap.Stats, loaded.Stats)

	rec, ok := loaded.Get("welding")
	require.True(t, ok)
	assert.Equal(t, "51-4121.00", rec.Taxonomy.Occupation.Code)
}

func TestLoadSnapshot_FailsClosedOnCorruption(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"Malformed JSON", `{"version": "1.0", "cache":`},
		{"Missing stats", `{"version": "1.0", "generatedAt": "2026-08-01T00:00:00Z", "cache": {}}`},
		{"Wrong version type", `{"version": 1, "generatedAt": "2026-08-01T00:00:00Z", "stats": {"total_skills": 0, "onet_matched": 0, "unmatched": 0, "match_rate": "0.0%"}, "cache": {}}`},
		{"Entry missing normalized", `{"version": "1.0", "generatedAt": "2026-08-01T00:00:00Z", "stats": {"total_skills": 1, "onet_matched": 0, "unmatched": 1, "match_rate": "0.0%"}, "cache": {"welding": {"onet": null}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "snap.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadSnapshot(path)
			require.Error(t, err)

			var serr *SnapshotError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var serr *SnapshotError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "unreadable")
}
