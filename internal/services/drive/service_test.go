package drive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/models"
)

func TestExtractFileID(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{
			"file url",
			"https://drive.google.com/file/d/1AbC_dEf-123/view?usp=sharing",
			"1AbC_dEf-123",
		},
		{
			"docs url",
			"https://docs.google.com/document/d/1XyZ987/edit",
			"1XyZ987",
		},
		{
			"sheets url",
			"https://docs.google.com/spreadsheets/d/1Sheet42/edit#gid=0",
			"1Sheet42",
		},
		{
			"file url without trailing segment",
			"https://drive.google.com/file/d/1AbC_dEf-123",
			"1AbC_dEf-123",
		},
		{
			"bare id passes through",
			"1RawFileID",
			"1RawFileID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractFileID(tt.ref))
		})
	}
}

func TestAvailableRequiresToken(t *testing.T) {
	withToken := NewService(&common.DriveConfig{AccessToken: "ya29.token"}, nil, arbor.NewLogger())
	assert.True(t, withToken.Available())

	withoutToken := NewService(&common.DriveConfig{}, nil, arbor.NewLogger())
	assert.False(t, withoutToken.Available())
}

func TestImportDocumentsWithoutToken(t *testing.T) {
	svc := NewService(&common.DriveConfig{}, nil, arbor.NewLogger())

	_, _, err := svc.ImportDocuments(context.Background(), []string{"1RawFileID"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrCapabilityUnavailable)
}

type fakeExtract struct {
	lastFilename string
	result       string
}

func (f *fakeExtract) ExtractFile(ctx context.Context, filename string, data []byte) (string, error) {
	f.lastFilename = filename
	return f.result, nil
}

func (f *fakeExtract) ExtractAll(ctx context.Context, files []models.UploadedFile) (string, []models.FileError) {
	return "", nil
}

func TestExtractTextSniffing(t *testing.T) {
	extract := &fakeExtract{result: "extracted pdf text"}
	svc := NewService(&common.DriveConfig{AccessToken: "ya29.token"}, extract, arbor.NewLogger())

	// Valid UTF-8 payloads are treated as plain text directly
	text, err := svc.extractText(context.Background(), "Google Drive File 1", []byte("plain notes"))
	require.NoError(t, err)
	assert.Equal(t, "plain notes", text)
	assert.Empty(t, extract.lastFilename)

	// PDF payloads go through the extraction service with a pdf filename
	text, err = svc.extractText(context.Background(), "Google Drive File 2", []byte("%PDF-1.7 binary"))
	require.NoError(t, err)
	assert.Equal(t, "extracted pdf text", text)
	assert.Equal(t, "Google Drive File 2.pdf", extract.lastFilename)
}
