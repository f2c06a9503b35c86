package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ternarybob/memoro/internal/models"
)

// extractImage runs the tesseract OCR binary over an image. Tesseract is an
// external system dependency; its absence is a capability error rather than
// a request failure.
func (s *Service) extractImage(ctx context.Context, data []byte, ext string) (string, error) {
	binary := s.tesseractPath
	if binary == "" {
		binary = "tesseract"
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: tesseract OCR binary not found (install tesseract or set extract.tesseract_path)", models.ErrCapabilityUnavailable)
	}

	tempFile, err := os.CreateTemp(s.tempDir, "ocr_*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp image file: %w", err)
	}
	tempFile.Close()

	// "stdout" as the output base makes tesseract print recognized text
	cmd := exec.CommandContext(ctx, resolved, tempPath, "stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		s.logger.Warn().
			Err(err).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("OCR extraction failed")
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
