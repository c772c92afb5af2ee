// Package gallery owns the persisted JSON document. Every operation re-reads
// the file from disk, mutates in memory and writes the whole document back,
// so edits made outside the process are picked up on the next request.
package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/saddexed/clips/internal/models"
)

// ErrNotFound is returned for operations on an unknown media id.
var ErrNotFound = errors.New("media not found")

// Store is the sole mutator of the gallery document file. The mutex
// serializes load-mutate-save cycles so concurrent writers cannot drop each
// other's changes.
type Store struct {
	path string
	mu   sync.Mutex

	// now is swappable under test.
	now func() time.Time
}

// NewStore manages the document at path. The file is created lazily on the
// first save.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads the document from disk. A missing file yields a fresh empty
// document; a present but unparseable file is a hard error, there is no
// corruption recovery.
func (s *Store) Load() (*models.GalleryDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := models.NewGalleryDocument()
		doc.Stats.LastUpdated = s.timestamp()
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read gallery data %q: %w", s.path, err)
	}
	var doc models.GalleryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse gallery data %q: %w", s.path, err)
	}
	if doc.Version == 0 {
		doc.Version = models.SchemaVersion
	}
	return &doc, nil
}

// Save recomputes stats from the files sequence and replaces the document on
// disk via write-to-temp-then-rename, so a crash mid-write cannot leave a
// torn file behind.
func (s *Store) Save(doc *models.GalleryDocument) error {
	doc.Version = models.SchemaVersion
	doc.RecomputeStats(s.timestamp())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode gallery data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".gallery-*.json")
	if err != nil {
		return fmt.Errorf("write gallery data %q: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write gallery data %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write gallery data %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace gallery data %q: %w", s.path, err)
	}
	return nil
}

// Insert prepends item and saves.
func (s *Store) Insert(item models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return err
	}
	doc.InsertFirst(item)
	return s.Save(doc)
}

// Rename updates the title of the item with the given id and returns the
// updated item. The caller validates the title; the id never changes.
func (s *Store) Rename(id, title string) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return models.MediaItem{}, err
	}
	item, ok := doc.UpdateTitle(id, title)
	if !ok {
		return models.MediaItem{}, ErrNotFound
	}
	if err := s.Save(doc); err != nil {
		return models.MediaItem{}, err
	}
	return item, nil
}

// Remove deletes the item with the given id and returns the removed record.
func (s *Store) Remove(id string) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return models.MediaItem{}, err
	}
	item, ok := doc.RemoveByID(id)
	if !ok {
		return models.MediaItem{}, ErrNotFound
	}
	if err := s.Save(doc); err != nil {
		return models.MediaItem{}, err
	}
	return item, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
