package interfaces

import (
	"github.com/ternarybob/memoro/internal/models"
)

// MemoStore persists generated memo records for later retrieval and download.
type MemoStore interface {
	// Save stores a memo record, assigning an ID if one is not set.
	Save(record *models.MemoRecord) error

	// Get retrieves a memo record by ID. Returns ErrMemoNotFound (wrapped)
	// when no record exists.
	Get(id string) (*models.MemoRecord, error)

	// List returns the most recent memo records, newest first.
	List(limit int) ([]*models.MemoRecord, error)

	// Close releases the underlying database.
	Close() error
}
