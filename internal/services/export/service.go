package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// Service renders stored memos into downloadable documents. The PDF backend
// is chosen once at construction from an ordered candidate list; if none is
// available, PDF export reports a capability error while Markdown export
// keeps working.
type Service struct {
	logger  arbor.ILogger
	backend pdfBackend
}

var _ interfaces.ExportService = (*Service)(nil)

// NewService creates an export service, probing PDF backends in order of
// preference.
func NewService(logger arbor.ILogger) *Service {
	s := &Service{logger: logger}

	for _, backend := range pdfBackends(logger) {
		if backend.Available() {
			s.backend = backend
			logger.Debug().
				Str("backend", backend.Name()).
				Msg("PDF export backend selected")
			break
		}
	}
	if s.backend == nil {
		logger.Warn().Msg("No PDF backend available, PDF export disabled")
	}

	return s
}

// RenderMarkdown returns the memo as a Markdown document.
func (s *Service) RenderMarkdown(record *models.MemoRecord) ([]byte, error) {
	return []byte(record.Memo), nil
}

// RenderPDF converts the memo into a PDF with a title header and appendix
// sections.
func (s *Service) RenderPDF(record *models.MemoRecord) ([]byte, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("%w: no PDF renderer available", models.ErrCapabilityUnavailable)
	}

	markdown := record.Memo + appendixMarkdown(record.Analysis)

	header := documentHeader{
		CompanyName: record.CompanyName,
		Subtitle:    "Investment Memo & Analysis",
		Date:        record.CreatedAt.Format("January 2, 2006"),
	}
	if record.CreatedAt.IsZero() {
		header.Date = time.Now().Format("January 2, 2006")
	}

	pdf, err := s.backend.Render(header, markdown)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("memo_id", record.ID).
			Msg("PDF rendering failed")
		return nil, fmt.Errorf("PDF rendering failed: %w", err)
	}

	return pdf, nil
}

// Filename returns the download filename for a memo export.
func (s *Service) Filename(companyName, ext string) string {
	name := strings.TrimSpace(companyName)
	if name == "" {
		name = "company"
	}
	return fmt.Sprintf("%s_investment_memo.%s", name, ext)
}

// appendixMarkdown builds the closing sections appended to every PDF export.
func appendixMarkdown(analysis *models.MarketAnalysis) string {
	var b strings.Builder

	b.WriteString("\n\n## Market Analysis Summary\n\n")
	b.WriteString("This investment memo includes comprehensive market analysis, investment stage assessment, and venture capital evaluation.\n\n")
	b.WriteString("The analysis is based on the provided company information and industry benchmarks for companies at similar stages.\n")

	if analysis != nil {
		b.WriteString(fmt.Sprintf("\n**Market Category:** %s\n\n", analysis.MarketCategory))
		b.WriteString("| Market Size | Value |\n|---|---|\n")
		b.WriteString(fmt.Sprintf("| TAM | %s |\n", analysis.Sizes.TAM))
		b.WriteString(fmt.Sprintf("| SAM | %s |\n", analysis.Sizes.SAM))
		b.WriteString(fmt.Sprintf("| SOM | %s |\n", analysis.Sizes.SOM))

		bench := analysis.Stage.Benchmark
		b.WriteString(fmt.Sprintf("\n**Stage Benchmark (%s):** typical revenue %s, typical burn %s, typical team %s, typical round %s.\n",
			bench.Stage, bench.TypicalRevenue, bench.TypicalBurn, bench.TypicalTeam, bench.TypicalRound))
		if analysis.Stage.RunwayMonths > 0 {
			b.WriteString(fmt.Sprintf("\n**Estimated Runway:** %.1f months.\n", analysis.Stage.RunwayMonths))
		}
		if analysis.Penetration != nil {
			b.WriteString(fmt.Sprintf("\n**Market Penetration:** %.1f%% (typical range %s).\n",
				analysis.Penetration.PenetrationPercentage, analysis.Penetration.TypicalRange))
		}
	}

	b.WriteString("\n## Key Investment Considerations\n\n")
	b.WriteString("- **Market Opportunity:** Evaluate the TAM, SAM, and SOM analysis provided\n")
	b.WriteString("- **Team Assessment:** Review the founding team's background and capabilities\n")
	b.WriteString("- **Financial Health:** Consider the current financial metrics and runway\n")
	b.WriteString("- **Competitive Position:** Assess the company's competitive advantages\n")
	b.WriteString("- **Risk Factors:** Review the identified risks and mitigation strategies\n")

	return b.String()
}
