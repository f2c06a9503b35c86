package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
	"github.com/ternarybob/memoro/internal/services/llm"
)

// Healthy runway reference in months.
const healthyRunwayMonths = 18.0

// Fixed fallback market sizes when neither the user nor the LLM can supply
// them.
const (
	defaultTAM = "$50B"
	defaultSAM = "$5B"
	defaultSOM = "$500M"
)

// Service performs market sizing and investment stage analysis.
type Service struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

var _ interfaces.MarketService = (*Service)(nil)

// NewService creates a market analysis service.
func NewService(llmService interfaces.LLMService, logger arbor.ILogger) *Service {
	return &Service{
		llm:    llmService,
		logger: logger,
	}
}

// Analyze computes the full market picture for a profile. Market size
// resolution and stage benchmarking always succeed; the qualitative
// penetration assessment is best-effort and omitted when the LLM call or
// its response parsing fails.
func (s *Service) Analyze(ctx context.Context, profile *models.CompanyProfile) (*models.MarketAnalysis, error) {
	category := profile.MarketCategory
	if category == "" {
		category = "Technology"
	}

	sizes, err := s.EstimateMarketSizes(ctx, profile.CompanyName, profile.TAM, profile.SAM, profile.SOM)
	if err != nil {
		return nil, fmt.Errorf("market size estimation failed: %w", err)
	}

	analysis := &models.MarketAnalysis{
		MarketCategory: category,
		Sizes:          sizes,
		Stage:          s.compareToStage(profile),
	}

	marketSize := profile.MarketSize
	if marketSize == "" {
		marketSize = sizes.TAM
	}

	if marketSize != "" && profile.Revenue != "" {
		penetration, err := s.analyzePenetration(ctx, category, marketSize, profile.Revenue, profile.Stage)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("company", profile.CompanyName).
				Msg("Market penetration analysis failed, omitting from result")
		} else {
			analysis.Penetration = penetration
		}
	}

	return analysis, nil
}

// EstimateMarketSizes resolves the TAM/SAM/SOM triple. Values the caller
// provides are kept; missing ones are estimated by the LLM, with fixed
// defaults when estimation fails. Parsed values are repaired downward so
// SOM <= SAM <= TAM always holds.
func (s *Service) EstimateMarketSizes(ctx context.Context, companyName, tam, sam, som string) (models.MarketSizes, error) {
	estimated := false

	if tam == "" || sam == "" || som == "" {
		estimated = true
		est := s.estimateWithLLM(ctx, companyName, tam, sam, som)
		if tam == "" {
			tam = est.TAM
		}
		if sam == "" {
			sam = est.SAM
		}
		if som == "" {
			som = est.SOM
		}
	}

	sizes := models.MarketSizes{
		TAM:       tam,
		SAM:       sam,
		SOM:       som,
		Estimated: estimated,
	}

	// Unparseable values become 1 so ratio displays stay finite
	sizes.TAMValue = ParseMoney(tam, 1)
	sizes.SAMValue = ParseMoney(sam, 1)
	sizes.SOMValue = ParseMoney(som, 1)

	if sizes.SAMValue > sizes.TAMValue {
		sizes.SAMValue = sizes.TAMValue
	}
	if sizes.SOMValue > sizes.SAMValue {
		sizes.SOMValue = sizes.SAMValue
	}

	return sizes, nil
}

// estimateWithLLM asks the model for missing market sizes. Any failure
// returns the fixed defaults.
func (s *Service) estimateWithLLM(ctx context.Context, companyName, tam, sam, som string) models.MarketSizes {
	fallback := models.MarketSizes{TAM: defaultTAM, SAM: defaultSAM, SOM: defaultSOM}

	orNotProvided := func(v string) string {
		if v == "" {
			return "Not provided"
		}
		return v
	}

	prompt := fmt.Sprintf(`Estimate realistic market size numbers for this company:

Company: %s
Current TAM: %s
Current SAM: %s
Current SOM: %s

Return only a JSON object with:
- tam: Total Addressable Market (e.g., "$50B")
- sam: Serviceable Addressable Market (e.g., "$5B")
- som: Serviceable Obtainable Market (e.g., "$500M")

Make SAM about 10-20%% of TAM and SOM about 10-20%% of SAM.
Return only valid JSON.`, companyName, orNotProvided(tam), orNotProvided(sam), orNotProvided(som))

	opts := interfaces.ChatOptions{
		Temperature:  0.3,
		MaxTokens:    200,
		JSONResponse: true,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("company", companyName).
			Msg("Market size estimation call failed, using defaults")
		return fallback
	}

	var est struct {
		TAM string `json:"tam"`
		SAM string `json:"sam"`
		SOM string `json:"som"`
	}
	if err := llm.DecodeJSONResponse(response, &est); err != nil {
		s.logger.Warn().
			Err(err).
			Str("company", companyName).
			Msg("Market size estimation response was not valid JSON, using defaults")
		return fallback
	}

	if est.TAM == "" {
		est.TAM = defaultTAM
	}
	if est.SAM == "" {
		est.SAM = defaultSAM
	}
	if est.SOM == "" {
		est.SOM = defaultSOM
	}

	return models.MarketSizes{TAM: est.TAM, SAM: est.SAM, SOM: est.SOM}
}

// compareToStage benchmarks the company's revenue, team size, and runway
// against conventional metrics for its stage.
func (s *Service) compareToStage(profile *models.CompanyProfile) models.StageComparison {
	benchmark := BenchmarkFor(profile.Stage)

	revenue := ParseMoney(profile.Revenue, 0)
	revenuePct := 0.0
	if benchmark.RevenueRef > 0 {
		revenuePct = clipPercent(revenue / benchmark.RevenueRef * 100)
	}

	teamSize := ParseTeamSize(profile.TeamSize, 0)

	burn := ParseMoney(profile.BurnRate, 0)
	raised := ParseMoney(profile.PrevRaised, 0)
	runway := 0.0
	if burn > 0 {
		runway = raised / burn
	}
	runwayPct := clipPercent(runway / healthyRunwayMonths * 100)

	return models.StageComparison{
		Benchmark:         benchmark,
		RevenuePercentage: revenuePct,
		CurrentTeamSize:   teamSize,
		TypicalTeamSize:   benchmark.TeamRef,
		RunwayMonths:      runway,
		RunwayPercentage:  runwayPct,
	}
}

// analyzePenetration asks the model for a qualitative market position
// assessment. The penetration percentage is tolerant of string or numeric
// JSON values and is clamped to [0, 100].
func (s *Service) analyzePenetration(ctx context.Context, category, marketSize, revenue, stage string) (*models.PenetrationAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this startup's market position:

Market Category: %s
Market Size (TAM): %s
Current Revenue: %s
Stage: %s

Provide analysis in JSON format with:
- market_penetration_percentage: Calculate what percentage of TAM they've captured
- typical_penetration_range: Typical range for companies at this stage in this market
- market_opportunity: Remaining market opportunity
- competitive_position: How they compare to typical companies
- growth_potential: Assessment of growth potential
- market_maturity: Is this market early, growing, or mature
- stage_appropriateness: Is their penetration appropriate for their stage

Return only valid JSON.`, category, marketSize, revenue, stage)

	opts := interfaces.ChatOptions{
		Temperature:  0.3,
		MaxTokens:    800,
		JSONResponse: true,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		return nil, fmt.Errorf("market analysis call failed: %w", err)
	}

	var raw struct {
		PenetrationPercentage any    `json:"market_penetration_percentage"`
		TypicalRange          string `json:"typical_penetration_range"`
		MarketOpportunity     string `json:"market_opportunity"`
		CompetitivePosition   string `json:"competitive_position"`
		GrowthPotential       string `json:"growth_potential"`
		MarketMaturity        string `json:"market_maturity"`
		StageAppropriateness  string `json:"stage_appropriateness"`
	}
	if err := llm.DecodeJSONResponse(response, &raw); err != nil {
		return nil, fmt.Errorf("market analysis returned malformed response: %w", err)
	}

	return &models.PenetrationAnalysis{
		PenetrationPercentage: clipPercent(coercePercent(raw.PenetrationPercentage)),
		TypicalRange:          raw.TypicalRange,
		MarketOpportunity:     raw.MarketOpportunity,
		CompetitivePosition:   raw.CompetitivePosition,
		GrowthPotential:       raw.GrowthPotential,
		MarketMaturity:        raw.MarketMaturity,
		StageAppropriateness:  raw.StageAppropriateness,
	}, nil
}

// coercePercent accepts a percentage as a JSON number or a string like
// "2.5%", returning zero when it cannot be read as a number.
func coercePercent(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(val, "%", ""), ",", ""))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
