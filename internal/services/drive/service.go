package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/httpclient"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

const driveDownloadURL = "https://www.googleapis.com/drive/v3/files/%s?alt=media"

// Service downloads Google Drive files by ID or share link and runs them
// through text extraction. It requires an OAuth2 access token with read
// scope; without one the service reports itself unavailable.
type Service struct {
	config  *common.DriveConfig
	extract interfaces.ExtractService
	logger  arbor.ILogger
	client  *http.Client
}

var _ interfaces.DriveService = (*Service)(nil)

// NewService creates a Drive import service.
func NewService(cfg *common.DriveConfig, extractService interfaces.ExtractService, logger arbor.ILogger) *Service {
	s := &Service{
		config:  cfg,
		extract: extractService,
		logger:  logger,
	}
	if cfg.AccessToken != "" {
		s.client = httpclient.NewOAuth2Client(context.Background(), cfg.AccessToken, parseTimeout(cfg.RequestTimeout))
	}
	return s
}

func parseTimeout(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Available reports whether an access token is configured.
func (s *Service) Available() bool {
	return s.config.AccessToken != ""
}

// ImportDocuments resolves each reference to a file ID, downloads the file,
// and extracts its text. Per-file failures are collected rather than
// aborting the batch.
func (s *Service) ImportDocuments(ctx context.Context, refs []string) (string, []models.FileError, error) {
	if !s.Available() {
		return "", nil, fmt.Errorf("%w: Google Drive access token not configured", models.ErrCapabilityUnavailable)
	}

	var sections []string
	var fileErrors []models.FileError

	for i, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		label := fmt.Sprintf("Google Drive File %d", i+1)

		fileID := ExtractFileID(ref)
		data, err := s.download(ctx, fileID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("file_id", fileID).
				Msg("Drive download failed")
			fileErrors = append(fileErrors, models.FileError{Filename: label, Error: err.Error()})
			continue
		}

		text, err := s.extractText(ctx, label, data)
		if err != nil {
			fileErrors = append(fileErrors, models.FileError{Filename: label, Error: err.Error()})
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		sections = append(sections, fmt.Sprintf("=== %s ===\n%s", label, text))
	}

	return strings.Join(sections, "\n\n"), fileErrors, nil
}

// ExtractFileID pulls the file ID out of a Drive share link. Plain IDs pass
// through unchanged.
func ExtractFileID(ref string) string {
	for _, marker := range []string{"file/d/", "document/d/", "spreadsheets/d/"} {
		if _, after, found := strings.Cut(ref, marker); found {
			id, _, _ := strings.Cut(after, "/")
			return id
		}
	}
	return ref
}

func (s *Service) download(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf(driveDownloadURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Drive request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Drive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Drive returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Drive response: %w", err)
	}
	return data, nil
}

// extractText sniffs the payload and routes it through the extraction
// service. Drive's alt=media endpoint returns raw bytes with no reliable
// content type, so valid UTF-8 is treated as plain text and anything else
// as a PDF.
func (s *Service) extractText(ctx context.Context, label string, data []byte) (string, error) {
	if utf8.Valid(data) && !strings.HasPrefix(string(data[:min(4, len(data))]), "%PDF") {
		return string(data), nil
	}
	return s.extract.ExtractFile(ctx, label+".pdf", data)
}
