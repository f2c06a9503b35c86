package interfaces

import (
	"github.com/ternarybob/memoro/internal/models"
)

// ExportService renders stored memos into downloadable documents.
type ExportService interface {
	// RenderMarkdown returns the memo as a Markdown document.
	RenderMarkdown(record *models.MemoRecord) ([]byte, error)

	// RenderPDF converts the memo Markdown into a PDF with a title header
	// and appendix sections. Returns a capability error when no PDF
	// renderer is available.
	RenderPDF(record *models.MemoRecord) ([]byte, error)

	// Filename returns the download filename for the given format
	// extension ("md" or "pdf").
	Filename(companyName, ext string) string
}
