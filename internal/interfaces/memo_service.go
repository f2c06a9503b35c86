package interfaces

import (
	"context"

	"github.com/ternarybob/memoro/internal/models"
)

// MemoService composes investment memos through a two-stage LLM pipeline.
type MemoService interface {
	// Compose runs the full pipeline: market category extraction, profile
	// synthesis and merge, template substitution, draft generation, and
	// critical review. A draft failure aborts the operation; a review
	// failure preserves the draft and records a warning on the result.
	Compose(ctx context.Context, req *models.MemoRequest) (*models.MemoResult, error)
}
