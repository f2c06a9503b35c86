package interfaces

import (
	"context"

	"github.com/ternarybob/memoro/internal/models"
)

// DriveService downloads documents from Google Drive by ID or share link.
type DriveService interface {
	// Available reports whether the service has credentials configured.
	Available() bool

	// ImportDocuments resolves each reference (raw file ID or share URL) to
	// a file ID, downloads it, and extracts text. Per-file failures are
	// tolerated and reported; successfully extracted text is aggregated
	// with per-file labels.
	ImportDocuments(ctx context.Context, refs []string) (string, []models.FileError, error)
}
