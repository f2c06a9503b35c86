package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/memoro/internal/models"
)

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			"memo not found",
			fmt.Errorf("%w: mem-1", models.ErrMemoNotFound),
			http.StatusNotFound,
		},
		{
			"capability unavailable",
			fmt.Errorf("%w: no PDF renderer available", models.ErrCapabilityUnavailable),
			http.StatusServiceUnavailable,
		},
		{
			"unsupported file type",
			fmt.Errorf("%w: archive.zip", models.ErrUnsupportedFileType),
			http.StatusBadRequest,
		},
		{
			"provider rate limit",
			errors.New("API error 429: rate limit exceeded"),
			http.StatusTooManyRequests,
		},
		{
			"provider quota exhausted",
			errors.New("RESOURCE_EXHAUSTED: quota exceeded for model"),
			http.StatusTooManyRequests,
		},
		{
			"unknown error",
			errors.New("disk full"),
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteServiceError(rec, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
