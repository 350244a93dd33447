package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestMissingFile(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "manifest.json"))
	require.NoError(t, err)
	assert.Empty(t, m.Videos)
}

func TestManifestUpsert(t *testing.T) {
	m := &Manifest{}

	m.Upsert(ManifestEntry{VideoID: "a", Title: "first", Prompts: 4})
	m.Upsert(ManifestEntry{VideoID: "b", Title: "second", Prompts: 3})
	require.Len(t, m.Videos, 2)

	// Re-packaging replaces in place, keeping order.
	m.Upsert(ManifestEntry{VideoID: "a", Title: "first again", Prompts: 5})
	require.Len(t, m.Videos, 2)
	assert.Equal(t, "a", m.Videos[0].VideoID)
	assert.Equal(t, "first again", m.Videos[0].Title)
	assert.Equal(t, 5, m.Videos[0].Prompts)
}

func TestManifestFind(t *testing.T) {
	m := &Manifest{Videos: []ManifestEntry{{VideoID: "a"}, {VideoID: "b"}}}

	require.NotNil(t, m.Find("b"))
	assert.Equal(t, "b", m.Find("b").VideoID)
	assert.Nil(t, m.Find("missing"))
}

func TestManifestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	m := &Manifest{}
	m.Upsert(ManifestEntry{
		VideoID:    "vid1",
		Title:      "Title",
		Prompts:    4,
		PackagedAt: time.Now().UTC(),
	})
	require.NoError(t, m.Save(path))
	assert.False(t, m.UpdatedAt.IsZero())

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, loaded.Videos, 1)
	assert.Equal(t, "vid1", loaded.Videos[0].VideoID)
	assert.Equal(t, 4, loaded.Videos[0].Prompts)
}

func TestScoreRecordMean(t *testing.T) {
	s := ScoreRecord{ReasoningDepth: 4, FactualAccuracy: 3, Coherence: 5}
	assert.InDelta(t, 4.0, s.Mean(), 1e-9)
}
