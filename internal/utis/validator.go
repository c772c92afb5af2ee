package utils

import (
	"fmt"
	"mime/multipart"

	"github.com/dustin/go-humanize"

	"github.com/saddexed/clips/internal/classify"
	"github.com/saddexed/clips/internal/models"
)

// ValidateUpload applies the accept-filter to a multipart file before any
// bytes are processed: the file must classify as image or video and must not
// exceed maxSize. A file of exactly maxSize passes.
func ValidateUpload(h *multipart.FileHeader, maxSize int64) (models.MediaType, error) {
	if h.Size > maxSize {
		return models.TypeUnknown, fmt.Errorf("%w (%s > %s)", ErrFileTooLarge,
			humanize.IBytes(uint64(h.Size)), humanize.IBytes(uint64(maxSize)))
	}
	t := classify.Detect(h.Filename, h.Header.Get("Content-Type"))
	if t == models.TypeUnknown {
		return models.TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedType, h.Filename)
	}
	return t, nil
}
