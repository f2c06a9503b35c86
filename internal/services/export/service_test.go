package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/models"
)

func sampleRecord() *models.MemoRecord {
	return &models.MemoRecord{
		ID:          "mem-1",
		CompanyName: "Acme",
		Memo:        "# Investment Memo\n\nAcme builds anvils.\n\n---\n\n# Venture Capital Analysis\n\nPromising.",
		CreatedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	assert.Equal(t, "Acme_investment_memo.pdf", svc.Filename("Acme", "pdf"))
	assert.Equal(t, "Acme_investment_memo.md", svc.Filename("Acme", "md"))
	assert.Equal(t, "company_investment_memo.pdf", svc.Filename("  ", "pdf"))
}

func TestRenderMarkdownReturnsMemoBody(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	record := sampleRecord()

	data, err := svc.RenderMarkdown(record)
	require.NoError(t, err)
	assert.Equal(t, record.Memo, string(data))
}

func TestRenderPDFProducesDocument(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	require.NotNil(t, svc.backend, "in-process renderer should always be available")

	data, err := svc.RenderPDF(sampleRecord())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderPDFWithoutBackend(t *testing.T) {
	svc := &Service{logger: arbor.NewLogger()}

	_, err := svc.RenderPDF(sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrCapabilityUnavailable)
}

func TestAppendixMarkdownSections(t *testing.T) {
	appendix := appendixMarkdown(nil)

	assert.Contains(t, appendix, "## Market Analysis Summary")
	assert.Contains(t, appendix, "## Key Investment Considerations")
	assert.Contains(t, appendix, "**Market Opportunity:**")
	assert.NotContains(t, appendix, "**Market Category:**")
}

func TestAppendixMarkdownIncludesAnalysis(t *testing.T) {
	analysis := &models.MarketAnalysis{
		MarketCategory: "Logistics",
		Sizes: models.MarketSizes{
			TAM: "$10B",
			SAM: "$1B",
			SOM: "$100M",
		},
		Stage: models.StageComparison{
			Benchmark: models.StageBenchmark{
				Stage:          "Seed",
				TypicalRevenue: "$0-500k",
				TypicalBurn:    "$50-150k/month",
				TypicalTeam:    "5-15 people",
				TypicalRound:   "$1-3M",
			},
			RunwayMonths: 9,
		},
		Penetration: &models.PenetrationAnalysis{
			PenetrationPercentage: 1.5,
			TypicalRange:          "0.1-1%",
		},
	}

	appendix := appendixMarkdown(analysis)

	assert.Contains(t, appendix, "**Market Category:** Logistics")
	assert.Contains(t, appendix, "| TAM | $10B |")
	assert.Contains(t, appendix, "| SOM | $100M |")
	assert.Contains(t, appendix, "**Estimated Runway:** 9.0 months.")
	assert.Contains(t, appendix, "**Market Penetration:** 1.5% (typical range 0.1-1%).")
}
