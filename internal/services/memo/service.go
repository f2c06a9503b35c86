package memo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// Service composes investment memos through a two-stage LLM pipeline: a
// draft written from the substituted template, then a critical review of
// that draft from a skeptical investor's perspective.
type Service struct {
	llm          interfaces.LLMService
	synth        interfaces.SynthService
	market       interfaces.MarketService
	store        interfaces.MemoStore
	logger       arbor.ILogger
	validate     *validator.Validate
	templatesDir string
	draftTokens  int
	reviewTokens int
}

var _ interfaces.MemoService = (*Service)(nil)

// NewService creates a memo composition service.
func NewService(
	llmService interfaces.LLMService,
	synthService interfaces.SynthService,
	marketService interfaces.MarketService,
	store interfaces.MemoStore,
	memoConfig *common.MemoConfig,
	logger arbor.ILogger,
) *Service {
	draftTokens := memoConfig.DraftTokens
	if draftTokens <= 0 {
		draftTokens = 2000
	}
	reviewTokens := memoConfig.ReviewTokens
	if reviewTokens <= 0 {
		reviewTokens = 2500
	}

	return &Service{
		llm:          llmService,
		synth:        synthService,
		market:       marketService,
		store:        store,
		logger:       logger,
		validate:     validator.New(),
		templatesDir: memoConfig.TemplatesDir,
		draftTokens:  draftTokens,
		reviewTokens: reviewTokens,
	}
}

// Compose runs the full memo pipeline. The stages run strictly in sequence
// because each consumes the previous stage's output. A draft failure aborts
// with no partial memo; a review failure preserves the draft and sets a
// warning on the result.
func (s *Service) Compose(ctx context.Context, req *models.MemoRequest) (*models.MemoResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid memo request: %w", err)
	}

	startTime := time.Now()
	s.logger.Info().
		Str("company", req.CompanyName).
		Msg("Starting memo composition")

	// Derive the market category, then let the LLM fill profile gaps
	category := s.synth.MarketCategory(ctx, req.CompanyOverview)
	synthesized := s.synth.Categorize(ctx, req.CompanyName, req.CompanyOverview, category)

	// Explicit user values always win over synthesized ones
	profile := req.Profile().Merge(synthesized)
	profile.CompanyName = req.CompanyName
	profile.MarketCategory = category

	prompt, err := s.buildPrompt(&profile)
	if err != nil {
		return nil, err
	}

	draft, err := s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, interfaces.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   s.draftTokens,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("company", req.CompanyName).
			Msg("Memo draft generation failed")
		return nil, fmt.Errorf("memo draft generation failed: %w", err)
	}

	result := &models.MemoResult{Profile: profile}

	critique, err := s.reviewDraft(ctx, draft)
	if err != nil {
		// The draft stands on its own; losing the review is not fatal
		s.logger.Warn().
			Err(err).
			Str("company", req.CompanyName).
			Msg("VC review stage failed, returning draft without critique")
		result.Memo = fmt.Sprintf("# Investment Memo\n\n%s", draft)
		result.Warning = "venture capital analysis unavailable: " + err.Error()
	} else {
		result.Memo = fmt.Sprintf("# Investment Memo\n\n%s\n\n---\n\n# Venture Capital Analysis\n\n%s", draft, critique)
	}

	analysis, err := s.market.Analyze(ctx, &profile)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("company", req.CompanyName).
			Msg("Market analysis failed, memo returned without it")
	} else {
		result.Analysis = analysis
	}

	record := &models.MemoRecord{
		ID:          uuid.NewString(),
		CompanyName: req.CompanyName,
		Memo:        result.Memo,
		Analysis:    result.Analysis,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Save(record); err != nil {
		return nil, fmt.Errorf("failed to persist memo: %w", err)
	}
	result.ID = record.ID

	s.logger.Info().
		Str("company", req.CompanyName).
		Str("memo_id", record.ID).
		Int("memo_length", len(result.Memo)).
		Dur("duration", time.Since(startTime)).
		Msg("Memo composition completed")

	return result, nil
}

// buildPrompt substitutes the merged profile and the default scorecard into
// the memo template.
func (s *Service) buildPrompt(profile *models.CompanyProfile) (string, error) {
	template, err := s.loadBasePrompt()
	if err != nil {
		return "", err
	}

	values := profile.ToMap()
	for key, value := range models.DefaultScorecard() {
		if _, exists := values[key]; !exists {
			values[key] = value
		}
	}

	return substitute(template, values), nil
}

// reviewDraft runs the second pipeline stage: a critical read of the draft
// memo from the perspective of a VC investing their own savings.
func (s *Service) reviewDraft(ctx context.Context, draft string) (string, error) {
	prompt := fmt.Sprintf(`Answer the following question based solely on the provided context. If the context is insufficient, say 'I don't know.' Do not make up facts.

Now overlook this memo with a critical eye. You are a venture capitalist, and your savings are being invested into this endeavor, you only want to put your money into the best ideas. However, you want to cast a wide net, because if you invest in even one idea that becomes big, you've struck gold.

Here is the investment memo to review:

%s

Please provide a comprehensive VC analysis that includes:
1. **Investment Thesis**: Why this could be a winning investment
2. **Key Strengths**: What makes this company compelling
3. **Major Risks**: What could go wrong
4. **Market Opportunity**: Assessment of the market size and timing
5. **Team Assessment**: Evaluation of the founding team
6. **Competitive Analysis**: How they stack up against competitors
7. **Financial Health**: Assessment of current financials and runway
8. **Investment Recommendation**: Pass, Consider, or Invest with reasoning
9. **Due Diligence Items**: What you'd want to investigate further
10. **Exit Potential**: Realistic exit scenarios and timelines

Format this as a professional VC analysis report with clear sections and actionable insights.
Base all analysis solely on the information provided in the memo. If any information is missing or unclear, explicitly state what additional information would be needed for a complete assessment.`, draft)

	return s.llm.ChatWithOptions(ctx, []interfaces.Message{{Role: "user", Content: prompt}}, interfaces.ChatOptions{
		Temperature: 0.6,
		MaxTokens:   s.reviewTokens,
	})
}
