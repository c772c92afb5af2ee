// Package classify maps an uploaded file's name and declared MIME type to a
// media type. The upload accept-filter and the transform selector both go
// through Detect, so a file accepted at upload time can never classify
// differently later in the pipeline.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/saddexed/clips/internal/models"
)

var imageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".mkv": true, ".m4v": true,
}

// Detect decides {image, video, unknown} for a filename/MIME pair. The
// declared MIME type's top-level category wins; the fixed extension
// allow-lists are the fallback for clients that send no or generic MIME
// types. Anything else is unknown, which callers must treat as a hard
// failure.
func Detect(filename, mimeType string) models.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.TypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.TypeVideo
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExts[ext]:
		return models.TypeImage
	case videoExts[ext]:
		return models.TypeVideo
	}
	return models.TypeUnknown
}

// ContentType returns the representative content type sent with the remote
// upload for each media type. It is deliberately fixed per type rather than
// sniffed from the bytes; the remote host only uses it to pick a preview.
func ContentType(t models.MediaType) string {
	switch t {
	case models.TypeVideo:
		return "video/mp4"
	case models.TypeImage:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
