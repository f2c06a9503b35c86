package memo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

type llmCall struct {
	prompt string
	opts   interfaces.ChatOptions
}

type scriptedLLM struct {
	results []struct {
		text string
		err  error
	}
	calls []llmCall
}

func (s *scriptedLLM) script(text string, err error) {
	s.results = append(s.results, struct {
		text string
		err  error
	}{text, err})
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.ChatWithOptions(ctx, messages, interfaces.DefaultChatOptions())
}

func (s *scriptedLLM) ChatWithOptions(ctx context.Context, messages []interfaces.Message, opts interfaces.ChatOptions) (string, error) {
	s.calls = append(s.calls, llmCall{prompt: messages[len(messages)-1].Content, opts: opts})
	if len(s.results) == 0 {
		return "", errors.New("unexpected LLM call")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.text, r.err
}

func (s *scriptedLLM) HealthCheck(ctx context.Context) error { return nil }
func (s *scriptedLLM) Close() error                          { return nil }

type fakeSynth struct {
	category string
	profile  models.CompanyProfile
}

func (f *fakeSynth) Categorize(ctx context.Context, companyName, companyDescription, marketCategory string) models.CompanyProfile {
	return f.profile
}

func (f *fakeSynth) ExtractFields(ctx context.Context, documentText string) (*models.ExtractionResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeSynth) MarketCategory(ctx context.Context, companyOverview string) string {
	return f.category
}

func (f *fakeSynth) GenerateTestData(ctx context.Context) *models.TestCompanyData {
	return nil
}

type fakeMarket struct {
	analysis *models.MarketAnalysis
	err      error
}

func (f *fakeMarket) Analyze(ctx context.Context, profile *models.CompanyProfile) (*models.MarketAnalysis, error) {
	return f.analysis, f.err
}

func (f *fakeMarket) EstimateMarketSizes(ctx context.Context, companyName, tam, sam, som string) (models.MarketSizes, error) {
	return models.MarketSizes{}, nil
}

type fakeStore struct {
	saved []*models.MemoRecord
}

func (f *fakeStore) Save(record *models.MemoRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeStore) Get(id string) (*models.MemoRecord, error) {
	return nil, models.ErrMemoNotFound
}

func (f *fakeStore) List(limit int) ([]*models.MemoRecord, error) { return nil, nil }
func (f *fakeStore) Close() error                                 { return nil }

func newTestService(llm *scriptedLLM, synth *fakeSynth, market *fakeMarket, store *fakeStore) *Service {
	return NewService(llm, synth, market, store, &common.MemoConfig{
		DraftTokens:  2000,
		ReviewTokens: 2500,
	}, arbor.NewLogger())
}

func validRequest() *models.MemoRequest {
	return &models.MemoRequest{
		CompanyName:     "Acme",
		CompanyOverview: "Anvil logistics platform",
		TeamBackground:  "Two founders out of a freight startup",
		Revenue:         "$1M",
	}
}

func TestComposeSuccess(t *testing.T) {
	llm := &scriptedLLM{}
	llm.script("draft text", nil)
	llm.script("critique text", nil)

	synth := &fakeSynth{
		category: "Logistics",
		profile: models.CompanyProfile{
			Revenue:  "$5M",
			OneLiner: "Anvils, delivered",
			Stage:    "Seed",
		},
	}
	store := &fakeStore{}
	market := &fakeMarket{analysis: &models.MarketAnalysis{MarketCategory: "Logistics"}}

	svc := newTestService(llm, synth, market, store)
	result, err := svc.Compose(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t,
		"# Investment Memo\n\ndraft text\n\n---\n\n# Venture Capital Analysis\n\ncritique text",
		result.Memo)
	assert.Empty(t, result.Warning)
	assert.NotEmpty(t, result.ID)
	assert.NotNil(t, result.Analysis)

	// Explicit request values beat synthesized ones; gaps are filled
	assert.Equal(t, "$1M", result.Profile.Revenue)
	assert.Equal(t, "Anvils, delivered", result.Profile.OneLiner)
	assert.Equal(t, "Logistics", result.Profile.MarketCategory)

	// Draft then review, with the pipeline's generation settings
	require.Len(t, llm.calls, 2)
	assert.InDelta(t, 0.7, llm.calls[0].opts.Temperature, 0.001)
	assert.Equal(t, 2000, llm.calls[0].opts.MaxTokens)
	assert.InDelta(t, 0.6, llm.calls[1].opts.Temperature, 0.001)
	assert.Equal(t, 2500, llm.calls[1].opts.MaxTokens)
	assert.Contains(t, llm.calls[1].prompt, "draft text")

	require.Len(t, store.saved, 1)
	assert.Equal(t, result.ID, store.saved[0].ID)
	assert.Equal(t, "Acme", store.saved[0].CompanyName)
}

func TestComposeDraftFailureAborts(t *testing.T) {
	llm := &scriptedLLM{}
	llm.script("", errors.New("overloaded"))

	store := &fakeStore{}
	svc := newTestService(llm, &fakeSynth{category: "SaaS"}, &fakeMarket{}, store)

	result, err := svc.Compose(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, result)

	// No review call after a failed draft, and nothing persisted
	assert.Len(t, llm.calls, 1)
	assert.Empty(t, store.saved)
}

func TestComposeReviewFailurePreservesDraft(t *testing.T) {
	llm := &scriptedLLM{}
	llm.script("draft text", nil)
	llm.script("", errors.New("timeout"))

	store := &fakeStore{}
	svc := newTestService(llm, &fakeSynth{category: "SaaS"}, &fakeMarket{}, store)

	result, err := svc.Compose(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "# Investment Memo\n\ndraft text", result.Memo)
	assert.Contains(t, result.Warning, "venture capital analysis unavailable")
	require.Len(t, store.saved, 1)
}

func TestComposeRejectsIncompleteRequest(t *testing.T) {
	llm := &scriptedLLM{}
	svc := newTestService(llm, &fakeSynth{}, &fakeMarket{}, &fakeStore{})

	_, err := svc.Compose(context.Background(), &models.MemoRequest{CompanyName: "Acme"})
	require.Error(t, err)
	assert.Empty(t, llm.calls)
}

func TestComposeMarketAnalysisFailureNonFatal(t *testing.T) {
	llm := &scriptedLLM{}
	llm.script("draft text", nil)
	llm.script("critique text", nil)

	svc := newTestService(llm, &fakeSynth{category: "SaaS"}, &fakeMarket{err: errors.New("no data")}, &fakeStore{})

	result, err := svc.Compose(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, result.Analysis)
	assert.NotEmpty(t, result.Memo)
}

func TestBuildPromptSubstitutesScorecardDefaults(t *testing.T) {
	svc := newTestService(&scriptedLLM{}, &fakeSynth{}, &fakeMarket{}, &fakeStore{})

	profile := models.CompanyProfile{CompanyName: "Acme", Stage: "Seed"}
	prompt, err := svc.buildPrompt(&profile)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Acme")
	assert.Contains(t, prompt, "Further Due Diligence")
	assert.NotContains(t, prompt, "{{score_founders}}")
	// Unknown profile fields stay as visible placeholders
	assert.Contains(t, prompt, "{{revenue}}")
}
