package synth

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
	"github.com/ternarybob/memoro/internal/services/llm"
)

// Service fills in company profile fields using an LLM. Categorization
// fabricates plausible values; extraction only reports what the source
// documents state.
type Service struct {
	llm              interfaces.LLMService
	logger           arbor.ILogger
	maxDocumentChars int
}

var _ interfaces.SynthService = (*Service)(nil)

// NewService creates a field synthesis service. maxDocumentChars caps the
// document text submitted for extraction; values <= 0 use the default of
// 4000 characters.
func NewService(llmService interfaces.LLMService, maxDocumentChars int, logger arbor.ILogger) *Service {
	if maxDocumentChars <= 0 {
		maxDocumentChars = 4000
	}
	return &Service{
		llm:              llmService,
		logger:           logger,
		maxDocumentChars: maxDocumentChars,
	}
}

// Categorize generates a complete plausible profile from the company name,
// description, and market category. Failures of any kind fall back to a
// fixed default profile so memo generation can always proceed.
func (s *Service) Categorize(ctx context.Context, companyName, companyDescription, marketCategory string) models.CompanyProfile {
	prompt := fmt.Sprintf(`Based on this company information, intelligently categorize and populate all investment memo fields:

Company Name: %s
Company Description: %s
Market Category: %s

Generate a complete company profile in JSON format with realistic data:
- website: A realistic website URL
- launch_year: A year between 2020-2024
- team_size: A number between 2-50
- stage: One of: Pre-seed, Seed, Series A, Series B, Series C (based on description)
- one_liner: A compelling one-sentence description
- market_size: Realistic market size for this category (e.g., "$10B TAM")
- current_cash: Current cash position (e.g., "$500k in cash")
- burn_rate: Monthly burn rate (e.g., "$50k/month")
- revenue: Current revenue (e.g., "$200k ARR")
- prev_raised: Previously raised amount (e.g., "$2M Seed")
- round_size: Current round size (e.g., "$5M Series A")
- post_money_valuation: Post-money valuation (e.g., "$25M")
- use_of_capital: What they need money for (2-3 sentences)
- named_competitors: 3-4 realistic competitor names for this market
- founder_1_name: First founder name
- founder_1_bio: First founder bio (2-3 sentences)
- founder_2_name: Second founder name
- founder_2_bio: Second founder bio (2-3 sentences)
- founder_3_name: Third founder name (optional)
- founder_3_bio: Third founder bio (optional)
- founder_4_name: Fourth founder name (optional)
- founder_4_bio: Fourth founder bio (optional)
- misc_notes: Additional context about the company
- pros: 3-4 key advantages
- cons: 3-4 key risks
- best_case: Best case scenario (2-3 sentences)
- worst_case: Worst case scenario (2-3 sentences)

Make it realistic and varied. Base the stage, financials, and team size on the description and market category.
Return only valid JSON.`, companyName, companyDescription, marketCategory)

	opts := interfaces.ChatOptions{
		Temperature:  0.7,
		MaxTokens:    1500,
		JSONResponse: true,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("company", companyName).
			Msg("Categorization call failed, using fallback profile")
		return fallbackProfile(companyName, marketCategory)
	}

	var profile models.CompanyProfile
	if err := llm.DecodeJSONResponseStrings(response, &profile); err != nil {
		s.logger.Warn().
			Err(err).
			Str("company", companyName).
			Msg("Categorization response was not valid JSON, using fallback profile")
		return fallbackProfile(companyName, marketCategory)
	}

	return profile
}

// fallbackProfile is the fixed profile used when categorization fails. The
// website is derived from the company name.
func fallbackProfile(companyName, marketCategory string) models.CompanyProfile {
	site := strings.ToLower(strings.ReplaceAll(companyName, " ", ""))
	return models.CompanyProfile{
		Website:            fmt.Sprintf("https://%s.com", site),
		LaunchYear:         "2023",
		TeamSize:           "8",
		Stage:              "Series A",
		OneLiner:           fmt.Sprintf("%s is revolutionizing the %s space.", companyName, marketCategory),
		MarketSize:         "$10B TAM",
		CurrentCash:        "$500k in cash",
		BurnRate:           "$50k/month",
		Revenue:            "$200k ARR",
		PrevRaised:         "$2M Seed",
		RoundSize:          "$5M Series A",
		PostMoneyValuation: "$25M",
		UseOfCapital:       "Expanding team, scaling operations, and developing new features.",
		NamedCompetitors:   "Competitor A, Competitor B, Competitor C",
		Founder1Name:       "Founder One",
		Founder1Bio:        "Experienced entrepreneur with background in the industry.",
		Founder2Name:       "Founder Two",
		Founder2Bio:        "Technical expert with deep domain knowledge.",
		MiscNotes:          "Promising early traction in the market.",
		Pros:               "Strong team, good market timing, innovative approach",
		Cons:               "Competitive market, early stage risks, execution challenges",
		BestCase:           "Becomes market leader and achieves significant growth.",
		WorstCase:          "Fails to gain traction and runs out of funding.",
	}
}

// ExtractFields pulls grounded company facts out of document text. Unlike
// Categorize, failures propagate so the caller can surface them; fabricating
// facts from documents would defeat the purpose of extraction.
func (s *Service) ExtractFields(ctx context.Context, documentText string) (*models.ExtractionResult, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, models.ErrEmptyDocument
	}

	truncated := documentText
	if len(truncated) > s.maxDocumentChars {
		// Back off to a rune boundary so the cut never splits a multi-byte
		// character and sends invalid UTF-8 to the model
		cut := s.maxDocumentChars
		for cut > 0 && !utf8.RuneStart(truncated[cut]) {
			cut--
		}
		truncated = truncated[:cut]
	}

	prompt := fmt.Sprintf(`Analyze the following document text and extract company information for an investment memo.

Document Content:
%s

Extract and return the following information in JSON format:
- company_name: Company name if mentioned
- company_overview: Business description, what they do, target market, business model (3-4 sentences)
- team_background: Information about founders, team members, their backgrounds (if available)
- financials: Any financial information mentioned (revenue, funding, burn rate, etc.)
- market_info: Market size, competitors, market opportunity (if mentioned)
- stage: Investment stage if mentioned (Pre-seed, Seed, Series A, etc.)
- key_metrics: Important numbers or KPIs mentioned
- additional_notes: Any other relevant information for investment analysis

If information is not available in the document, set the field to empty string.
Return only valid JSON.`, truncated)

	opts := interfaces.ChatOptions{
		Temperature:  0.3,
		MaxTokens:    1500,
		JSONResponse: true,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		return nil, fmt.Errorf("field extraction failed: %w", err)
	}

	var result models.ExtractionResult
	if err := llm.DecodeJSONResponseStrings(response, &result); err != nil {
		return nil, fmt.Errorf("field extraction returned malformed response: %w", err)
	}

	return &result, nil
}

// MarketCategory derives a short market category label from the company
// overview. Failures fall back to "Technology".
func (s *Service) MarketCategory(ctx context.Context, companyOverview string) string {
	prompt := fmt.Sprintf(`Based on this company overview, extract the market category:

Company Overview: %s

Return only the market category (e.g., "Fintech", "Healthtech", "Edtech", "Enterprise SaaS", "Consumer", "Marketplace", "Hardware", etc.) in a single word or short phrase.`, companyOverview)

	opts := interfaces.ChatOptions{
		Temperature: 0.3,
		MaxTokens:   50,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Market category extraction failed, using default")
		return "Technology"
	}

	category := strings.TrimSpace(response)
	if category == "" {
		return "Technology"
	}
	return category
}

// GenerateTestData produces a random plausible company profile for
// exercising the memo form. Failures fall back to a fixed sample company.
func (s *Service) GenerateTestData(ctx context.Context) *models.TestCompanyData {
	prompt := `Generate a realistic startup company profile with the following information in JSON format:
- company_name: A realistic startup name
- company_overview: A detailed description of the company idea, target market, business model, and how the product/service works (3-4 sentences)
- team_background: A description of the founding team, their backgrounds, experience, and qualifications (3-4 sentences)
- website: A realistic website URL
- launch_year: A year between 2020-2024
- team_size: A number between 2-50
- stage: One of: Pre-seed, Seed, Series A, Series B, Series C
- market_size: A realistic market size (e.g., "$10B TAM")
- tam: Total Addressable Market (e.g., "$50B")
- sam: Serviceable Addressable Market (e.g., "$5B")
- som: Serviceable Obtainable Market (e.g., "$500M")
- current_cash: Current cash position (e.g., "$500k in cash")
- burn_rate: Monthly burn rate (e.g., "$50k/month")
- revenue: Current revenue (e.g., "$200k ARR")
- prev_raised: Previously raised amount (e.g., "$2M Seed")
- round_size: Current round size (e.g., "$5M Series A")
- post_money_valuation: Post-money valuation (e.g., "$25M")
- use_of_capital: What they need money for (2-3 sentences)

Make it realistic and varied - could be any type of startup (SaaS, marketplace, hardware, etc.)
Make SAM about 10-20% of TAM and SOM about 10-20% of SAM.`

	opts := interfaces.ChatOptions{
		Temperature:  0.8,
		MaxTokens:    800,
		JSONResponse: true,
	}

	response, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, opts)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Test data generation failed, using sample company")
		return sampleTestCompany()
	}

	var data models.TestCompanyData
	if err := llm.DecodeJSONResponseStrings(response, &data); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Test data response was not valid JSON, using sample company")
		return sampleTestCompany()
	}

	return &data
}

// sampleTestCompany is the fixed sample used when test data generation fails.
func sampleTestCompany() *models.TestCompanyData {
	return &models.TestCompanyData{
		CompanyName:     "TechFlow Solutions",
		CompanyOverview: "TechFlow Solutions is an AI-powered workflow automation platform that helps enterprise teams streamline their business processes. The company targets mid to large enterprises struggling with manual, time-consuming workflows across departments like HR, finance, and operations. Their SaaS platform uses machine learning to automatically identify, optimize, and execute repetitive tasks, reducing manual work by up to 80% while improving accuracy and compliance.",
		TeamBackground:  "The founding team includes Sarah Chen, former engineering lead at Google with 10+ years in enterprise software who previously built automation tools at Slack, and Marcus Rodriguez, ex-McKinsey consultant with an MBA from Stanford who previously scaled sales at Salesforce and Box. The team brings deep expertise in workflow automation, enterprise sales, and AI/ML technologies.",
		CompanyProfile: models.CompanyProfile{
			Website:            "https://techflow.io",
			LaunchYear:         "2023",
			TeamSize:           "12",
			Stage:              "Series A",
			MarketSize:         "$15B TAM",
			TAM:                "$50B",
			SAM:                "$5B",
			SOM:                "$500M",
			CurrentCash:        "$800k in cash",
			BurnRate:           "$75k/month",
			Revenue:            "$450k ARR",
			PrevRaised:         "$2.5M Seed",
			RoundSize:          "$8M Series A",
			PostMoneyValuation: "$35M",
			UseOfCapital:       "Expanding engineering team, scaling sales operations, and developing new AI features for enterprise customers.",
		},
	}
}
