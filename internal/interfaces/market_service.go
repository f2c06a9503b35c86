package interfaces

import (
	"context"

	"github.com/ternarybob/memoro/internal/models"
)

// MarketService performs market sizing and investment stage analysis.
type MarketService interface {
	// Analyze computes the full market picture for a profile: TAM/SAM/SOM
	// resolution (with LLM estimation for missing values), stage benchmark
	// comparison, runway, and market penetration assessment.
	Analyze(ctx context.Context, profile *models.CompanyProfile) (*models.MarketAnalysis, error)

	// EstimateMarketSizes fills in missing TAM/SAM/SOM values. Returned
	// values always satisfy SOM <= SAM <= TAM.
	EstimateMarketSizes(ctx context.Context, companyName, tam, sam, som string) (models.MarketSizes, error)
}
