package interfaces

import (
	"context"

	"github.com/ternarybob/memoro/internal/models"
)

// SynthService fills in company profile fields using an LLM. It has two
// distinct modes: categorization is allowed to fabricate plausible values,
// extraction must only report what the source text states.
type SynthService interface {
	// Categorize generates a complete plausible profile from the company
	// name, description, and market category. Transport or parse failures
	// fall back to a fixed default profile rather than returning an error.
	Categorize(ctx context.Context, companyName, companyDescription, marketCategory string) models.CompanyProfile

	// ExtractFields pulls grounded company facts out of document text.
	// The text is truncated before submission; failures propagate.
	ExtractFields(ctx context.Context, documentText string) (*models.ExtractionResult, error)

	// MarketCategory derives a short market category label from the company
	// overview. Failures fall back to "Technology".
	MarketCategory(ctx context.Context, companyOverview string) string

	// GenerateTestData produces a random plausible company profile for
	// exercising the form. Failures fall back to a fixed sample company.
	GenerateTestData(ctx context.Context) *models.TestCompanyData
}
