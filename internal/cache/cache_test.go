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

func weldingEntry() *taxonomy.Entry {
	return &taxonomy.Entry{
		ID:   "2.B.1.a",
		Name: "Welding",
		Occupation: taxonomy.Occupation{
			Code:  "51-4121.00",
			Title: "Welders, Cutters, Solderers, and Brazers",
		},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "welding", Key("Welding"))
	assert.Equal(t, "arc welding", Key("  Arc Welding  "))
	assert.Equal(t, "", Key("   "))
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "welding")
	require.NoError(t, err)
	assert.False(t, ok)

	rec := Record{Normalized: "welding", Taxonomy: weldingEntry()}
	require.NoError(t, store.Set(ctx, "welding", rec))

	got, ok, err := store.Get(ctx, "welding")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Welding", got.Taxonomy.Name)

	require.NoError(t, store.Remove(ctx, "welding"))
	_, ok, err = store.Get(ctx, "welding")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ExplicitMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "thingamajig", Record{Normalized: "thingamajig"}))

	got, ok, err := store.Get(ctx, "thingamajig")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Taxonomy, "a cached miss is present but has no taxonomy entry")
}

func TestFileStore_PersistsAcrossReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "welding", Record{Normalized: "welding", Taxonomy: weldingEntry()}))
	require.NoError(t, store.Set(ctx, "rigging", Record{Normalized: "rigging"}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	got, ok, err := reopened.Get(ctx, "welding")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2.B.1.a", got.Taxonomy.ID)

	got, ok, err = reopened.Get(ctx, "rigging")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Taxonomy)
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "welding")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestFileStore_RemovePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "welding", Record{Normalized: "welding"}))
	require.NoError(t, store.Remove(ctx, "welding"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok, err := reopened.Get(ctx, "welding")
	require.NoError(t, err)
	assert.False(t, ok)
}
