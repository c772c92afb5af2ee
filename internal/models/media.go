package models

import "fmt"

// SchemaVersion is written into every saved GalleryDocument so the shape of
// MediaItem can evolve later with a migration path.
const SchemaVersion = 1

// MediaType is the closed set of media kinds the gallery handles.
type MediaType string

const (
	TypeImage   MediaType = "image"
	TypeVideo   MediaType = "video"
	TypeUnknown MediaType = "unknown"
)

// Title returns the type with a leading capital, for user-facing messages
// ("Image uploaded successfully!").
func (t MediaType) Title() string {
	s := string(t)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// MediaItem is one gallery entry. The JSON record plus the remote URL
// together are the sole system of record: local copies of the bytes are
// deleted once the remote upload succeeds.
type MediaItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	DiscordURL   string    `json:"discordUrl"`
	UploadDate   string    `json:"uploadDate"`
	Size         int64     `json:"size"`
	Type         MediaType `json:"type"`
}

// Stats is derived from the files sequence and recomputed on every save.
type Stats struct {
	TotalFiles  int    `json:"totalFiles"`
	TotalSize   string `json:"totalSize"`
	VideoCount  int    `json:"videoCount"`
	ImageCount  int    `json:"imageCount"`
	LastUpdated string `json:"lastUpdated"`
}

// GalleryDocument is the single persisted JSON object holding all media
// records, newest first.
type GalleryDocument struct {
	Version int         `json:"version"`
	Files   []MediaItem `json:"files"`
	Stats   Stats       `json:"stats"`
}

// NewGalleryDocument returns an empty document with zeroed stats.
func NewGalleryDocument() *GalleryDocument {
	return &GalleryDocument{
		Version: SchemaVersion,
		Files:   []MediaItem{},
		Stats:   Stats{TotalSize: "0.00 MB"},
	}
}

// FindByID returns a pointer into Files for the item with the given id, or
// nil if no such item exists. Linear scan; the document is small.
func (d *GalleryDocument) FindByID(id string) *MediaItem {
	for i := range d.Files {
		if d.Files[i].ID == id {
			return &d.Files[i]
		}
	}
	return nil
}

// InsertFirst prepends an item so the gallery lists newest uploads first.
func (d *GalleryDocument) InsertFirst(item MediaItem) {
	d.Files = append([]MediaItem{item}, d.Files...)
}

// RemoveByID removes the item with the given id and returns it, or false if
// the id is unknown.
func (d *GalleryDocument) RemoveByID(id string) (MediaItem, bool) {
	for i := range d.Files {
		if d.Files[i].ID == id {
			removed := d.Files[i]
			d.Files = append(d.Files[:i], d.Files[i+1:]...)
			return removed, true
		}
	}
	return MediaItem{}, false
}

// UpdateTitle sets the title of the item with the given id and returns the
// updated item, or false if the id is unknown. The id itself is immutable.
func (d *GalleryDocument) UpdateTitle(id, title string) (MediaItem, bool) {
	item := d.FindByID(id)
	if item == nil {
		return MediaItem{}, false
	}
	item.Title = title
	return *item, true
}

// RecomputeStats rebuilds Stats from Files. lastUpdated is the caller's
// timestamp so saves are deterministic under test.
func (d *GalleryDocument) RecomputeStats(lastUpdated string) {
	var videos, images int
	var totalBytes int64
	for _, f := range d.Files {
		switch f.Type {
		case TypeVideo:
			videos++
		case TypeImage:
			images++
		}
		totalBytes += f.Size
	}
	d.Stats = Stats{
		TotalFiles:  len(d.Files),
		TotalSize:   fmt.Sprintf("%.2f MB", float64(totalBytes)/(1024*1024)),
		VideoCount:  videos,
		ImageCount:  images,
		LastUpdated: lastUpdated,
	}
}
