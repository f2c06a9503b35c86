package interfaces

import (
	"context"

	"github.com/ternarybob/memoro/internal/models"
)

// ExtractService converts uploaded documents into plain text for analysis.
type ExtractService interface {
	// ExtractFile extracts text from a single document identified by its
	// filename extension. Returns ErrUnsupportedFileType (wrapped) for
	// unknown extensions and capability errors when a backing tool for a
	// supported type is unavailable.
	ExtractFile(ctx context.Context, filename string, data []byte) (string, error)

	// ExtractAll processes a batch of documents, tolerating per-file
	// failures. Successfully extracted text is aggregated with a
	// "=== filename ===" label per file; failures are reported per file
	// without aborting the batch.
	ExtractAll(ctx context.Context, files []models.UploadedFile) (string, []models.FileError)
}
