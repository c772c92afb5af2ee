// Package storage provides the remote blob stores that hold the actual media
// bytes. The gallery only keeps metadata; once an upload lands remotely the
// returned URL is the sole reference to the content.
package storage

import (
	"context"
	"fmt"

	"github.com/saddexed/clips/internal/models"
)

// RemoteStore uploads a processed file's bytes and returns the public URL
// under which they are served. Implementations must not retry; a transient
// failure surfaces to the user, who re-submits.
type RemoteStore interface {
	Upload(ctx context.Context, filename string, mediaType models.MediaType, data []byte) (string, error)
}

// UploadError carries the upstream status and message of a failed remote
// upload so handlers can forward the detail to the client.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote upload failed: %s", e.Message)
	}
	return fmt.Sprintf("remote upload failed: status %d: %s", e.Status, e.Message)
}
