package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// Service extracts plain text from uploaded documents. Each supported file
// type has its own extraction path; a missing backing tool surfaces as a
// capability error for that type only.
type Service struct {
	logger        arbor.ILogger
	tesseractPath string
	tempDir       string
}

var _ interfaces.ExtractService = (*Service)(nil)

// NewService creates a document extraction service. tesseractPath overrides
// the OCR binary location; empty means look up "tesseract" on PATH.
func NewService(tesseractPath string, logger arbor.ILogger) *Service {
	tempDir := filepath.Join(os.TempDir(), "memoro-extract")
	os.MkdirAll(tempDir, 0755)

	return &Service{
		logger:        logger,
		tesseractPath: tesseractPath,
		tempDir:       tempDir,
	}
}

// ExtractFile extracts text from a single document based on its filename
// extension.
func (s *Service) ExtractFile(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return s.extractPDF(ctx, data)
	case ".docx":
		return s.extractDOCX(data)
	case ".xlsx", ".xls":
		return s.extractXLSX(data)
	case ".txt":
		return s.extractText(data)
	case ".png", ".jpg", ".jpeg", ".tiff", ".bmp":
		return s.extractImage(ctx, data, ext)
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFileType, filename)
	}
}

// ExtractAll processes a batch of documents. Per-file failures are recorded
// and skipped; the batch never aborts. Extracted text is aggregated with a
// filename label per file.
func (s *Service) ExtractAll(ctx context.Context, files []models.UploadedFile) (string, []models.FileError) {
	var aggregated strings.Builder
	var fileErrors []models.FileError

	for _, file := range files {
		text, err := s.ExtractFile(ctx, file.Name, file.Data)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("filename", file.Name).
				Msg("File extraction failed, continuing with remaining files")
			fileErrors = append(fileErrors, models.FileError{
				Filename: file.Name,
				Error:    err.Error(),
			})
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		aggregated.WriteString(fmt.Sprintf("\n\n=== %s ===\n%s", file.Name, text))
	}

	return aggregated.String(), fileErrors
}

// extractText validates and returns plain text content.
func (s *Service) extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid UTF-8")
	}
	return strings.TrimSpace(string(data)), nil
}
