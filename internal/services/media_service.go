package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saddexed/clips/internal/gallery"
	"github.com/saddexed/clips/internal/models"
	"github.com/saddexed/clips/internal/storage"
	"github.com/saddexed/clips/internal/transform"
	utils "github.com/saddexed/clips/internal/utis"
)

// MediaService runs the upload pipeline and fronts the gallery store for the
// CRUD operations.
type MediaService struct {
	remote       storage.RemoteStore
	gallery      *gallery.Store
	processedDir string
	log          *zap.SugaredLogger
}

func NewMediaService(remote storage.RemoteStore, store *gallery.Store, processedDir string, log *zap.SugaredLogger) *MediaService {
	return &MediaService{remote: remote, gallery: store, processedDir: processedDir, log: log}
}

// Upload describes one received file, already saved to a temp path and
// classified by the accept-filter.
type Upload struct {
	TempPath     string
	OriginalName string
	Title        string
	Size         int64
	Type         models.MediaType
}

// Ingest drives a received upload through transform, remote upload, metadata
// persist and local cleanup. On success both local copies are gone and the
// returned item's URL is the only reference to the bytes. A failure after the
// metadata is persisted still returns an error but leaves the item in place;
// orphaned temp files are tolerated, not retried.
func (s *MediaService) Ingest(ctx context.Context, u Upload) (*models.MediaItem, error) {
	processedName := "processed_" + filepath.Base(u.TempPath)
	processedPath := filepath.Join(s.processedDir, processedName)

	var err error
	switch u.Type {
	case models.TypeImage:
		err = transform.Image(u.TempPath, processedPath)
	case models.TypeVideo:
		err = transform.Video(u.TempPath, processedPath)
	default:
		err = fmt.Errorf("%w: %s", utils.ErrUnsupportedType, u.OriginalName)
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(processedPath)
	if err != nil {
		return nil, fmt.Errorf("read processed file: %w", err)
	}

	title := strings.TrimSpace(u.Title)
	if title == "" {
		title = strings.TrimSuffix(u.OriginalName, filepath.Ext(u.OriginalName))
	}

	s.log.Infow("uploading to remote store",
		"title", title, "type", u.Type, "size", humanize.IBytes(uint64(u.Size)))
	url, err := s.remote.Upload(ctx, processedName, u.Type, data)
	if err != nil {
		return nil, err
	}

	item := models.MediaItem{
		ID:           uuid.NewString(),
		Title:        title,
		Filename:     processedName,
		OriginalName: u.OriginalName,
		DiscordURL:   url,
		UploadDate:   time.Now().UTC().Format(time.RFC3339),
		Size:         u.Size,
		Type:         u.Type,
	}
	if err := s.gallery.Insert(item); err != nil {
		return nil, err
	}

	// Past this point shared state is already mutated; cleanup failures are
	// surfaced but the record stays.
	for _, p := range []string{u.TempPath, processedPath} {
		if err := os.Remove(p); err != nil {
			s.log.Warnw("orphaned local file", "path", p, "error", err)
			return nil, fmt.Errorf("cleanup %q: %w", p, err)
		}
	}

	s.log.Infow("upload complete", "id", item.ID, "title", item.Title, "url", item.DiscordURL)
	return &item, nil
}

// List returns the whole document as read from disk.
func (s *MediaService) List() (*models.GalleryDocument, error) {
	return s.gallery.Load()
}

// Rename updates an item's title.
func (s *MediaService) Rename(id, title string) (models.MediaItem, error) {
	item, err := s.gallery.Rename(id, title)
	if err != nil {
		return models.MediaItem{}, err
	}
	s.log.Infow("renamed media", "id", id, "title", item.Title, "type", item.Type)
	return item, nil
}

// Delete removes an item's metadata record. The remote bytes are left alone;
// the chat platform owns their lifecycle.
func (s *MediaService) Delete(id string) (models.MediaItem, error) {
	item, err := s.gallery.Remove(id)
	if err != nil {
		return models.MediaItem{}, err
	}
	s.log.Infow("deleted media", "id", id, "title", item.Title, "type", item.Type)
	return item, nil
}
