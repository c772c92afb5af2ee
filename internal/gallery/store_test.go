package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saddexed/clips/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "gallery-data.json"))
}

func item(id string, mediaType models.MediaType, size int64) models.MediaItem {
	return models.MediaItem{
		ID:         id,
		Title:      "title-" + id,
		Filename:   "processed_" + id,
		DiscordURL: "https://cdn.example.com/" + id,
		UploadDate: "2026-08-31T12:00:00Z",
		Size:       size,
		Type:       mediaType,
	}
}

func TestLoadMissingFileReturnsFreshDocument(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.SchemaVersion, doc.Version)
	assert.Empty(t, doc.Files)
	assert.Equal(t, 0, doc.Stats.TotalFiles)
	assert.Equal(t, "0.00 MB", doc.Stats.TotalSize)
}

func TestLoadPropagatesParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery-data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse gallery data")
}

func TestInsertPrependsAndRecomputesStats(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(item("a", models.TypeImage, 2*1024*1024)))
	require.NoError(t, s.Insert(item("b", models.TypeVideo, 6*1024*1024)))

	doc, err := s.Load()
	require.NoError(t, err)

	// newest first
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "b", doc.Files[0].ID)
	assert.Equal(t, "a", doc.Files[1].ID)

	assert.Equal(t, 2, doc.Stats.TotalFiles)
	assert.Equal(t, 1, doc.Stats.ImageCount)
	assert.Equal(t, 1, doc.Stats.VideoCount)
	assert.Equal(t, "8.00 MB", doc.Stats.TotalSize)
	assert.NotEmpty(t, doc.Stats.LastUpdated)
}

func TestStatsInvariant(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(item("a", models.TypeImage, 100)))
	require.NoError(t, s.Insert(item("b", models.TypeImage, 200)))
	require.NoError(t, s.Insert(item("c", models.TypeVideo, 300)))

	_, err := s.Remove("b")
	require.NoError(t, err)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, len(doc.Files), doc.Stats.TotalFiles)
	assert.Equal(t, doc.Stats.TotalFiles, doc.Stats.ImageCount+doc.Stats.VideoCount)
}

func TestRenameRoundTrip(t *testing.T) {
	s := newTestStore(t)
	orig := item("a", models.TypeImage, 1234)
	require.NoError(t, s.Insert(orig))

	updated, err := s.Rename("a", "New Title")
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)

	doc, err := s.Load()
	require.NoError(t, err)
	got := doc.FindByID("a")
	require.NotNil(t, got)
	assert.Equal(t, "New Title", got.Title)
	// everything else unchanged
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.Size, got.Size)
	assert.Equal(t, orig.DiscordURL, got.DiscordURL)
	assert.Equal(t, orig.Type, got.Type)
}

func TestRenameUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Rename("999999", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveIsIdempotentlyNotFound(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(item("a", models.TypeVideo, 10)))

	removed, err := s.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)

	// second delete of the same id fails
	_, err = s.Remove("a")
	assert.ErrorIs(t, err, ErrNotFound)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Files)
	assert.Equal(t, 0, doc.Stats.TotalFiles)
}

func TestExternalEditsArePickedUp(t *testing.T) {
	// no in-memory cache: a second store over the same path sees writes made
	// by the first
	path := filepath.Join(t.TempDir(), "gallery-data.json")
	s1 := NewStore(path)
	s2 := NewStore(path)

	require.NoError(t, s1.Insert(item("a", models.TypeImage, 1)))
	doc, err := s2.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Files, 1)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "gallery-data.json"))
	require.NoError(t, s.Insert(item("a", models.TypeImage, 1)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gallery-data.json", entries[0].Name())
}
