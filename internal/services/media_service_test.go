package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saddexed/clips/internal/gallery"
	"github.com/saddexed/clips/internal/models"
)

type stubRemote struct {
	calls int
	err   error
}

func (s *stubRemote) Upload(context.Context, string, models.MediaType, []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.example.com/file", nil
}

func newService(t *testing.T, remote *stubRemote) (*MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	processedDir := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))
	store := gallery.NewStore(filepath.Join(dir, "gallery-data.json"))
	return NewMediaService(remote, store, processedDir, zap.NewNop().Sugar()), dir
}

func TestIngestRejectsUnknownTypeBeforeTransform(t *testing.T) {
	remote := &stubRemote{}
	svc, dir := newService(t, remote)
	temp := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(temp, []byte("x"), 0o644))

	_, err := svc.Ingest(context.Background(), Upload{
		TempPath:     temp,
		OriginalName: "blob.bin",
		Type:         models.TypeUnknown,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.Zero(t, remote.calls)
}

func TestIngestVideoPipeline(t *testing.T) {
	remote := &stubRemote{}
	svc, dir := newService(t, remote)
	temp := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(temp, []byte("video bytes"), 0o644))

	item, err := svc.Ingest(context.Background(), Upload{
		TempPath:     temp,
		OriginalName: "holiday clip.mp4",
		Title:        "  Holiday  ",
		Size:         11,
		Type:         models.TypeVideo,
	})
	require.NoError(t, err)

	assert.Equal(t, "Holiday", item.Title)
	assert.Equal(t, models.TypeVideo, item.Type)
	assert.Equal(t, int64(11), item.Size)
	assert.Equal(t, "processed_clip.mp4", item.Filename)
	assert.Equal(t, "https://cdn.example.com/file", item.DiscordURL)
	assert.NotEmpty(t, item.ID)

	// both local copies are gone
	_, err = os.Stat(temp)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "processed", "processed_clip.mp4"))
	assert.True(t, os.IsNotExist(err))
}

func TestIngestRemoteFailureKeepsLocalFiles(t *testing.T) {
	remote := &stubRemote{err: assert.AnError}
	svc, dir := newService(t, remote)
	temp := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(temp, []byte("video bytes"), 0o644))

	_, err := svc.Ingest(context.Background(), Upload{
		TempPath:     temp,
		OriginalName: "clip.mp4",
		Type:         models.TypeVideo,
	})
	require.Error(t, err)

	// the pipeline aborted before cleanup; orphans are tolerated, not removed
	_, statErr := os.Stat(temp)
	assert.NoError(t, statErr)

	// and nothing was persisted
	doc, loadErr := svc.List()
	require.NoError(t, loadErr)
	assert.Empty(t, doc.Files)
}
