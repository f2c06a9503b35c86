package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// ExtractHandler accepts multipart document uploads and returns structured
// company fields extracted from their combined text.
type ExtractHandler struct {
	logger  arbor.ILogger
	extract interfaces.ExtractService
	synth   interfaces.SynthService
	config  *common.ExtractConfig
}

func NewExtractHandler(extractService interfaces.ExtractService, synthService interfaces.SynthService, cfg *common.ExtractConfig) *ExtractHandler {
	return &ExtractHandler{
		logger:  common.GetLogger(),
		extract: extractService,
		synth:   synthService,
		config:  cfg,
	}
}

// ExtractDocumentsHandler handles POST /api/extract
func (h *ExtractHandler) ExtractDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := r.ParseMultipartForm(h.config.MaxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	var files []models.UploadedFile
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload %s: %v", header.Filename, err))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload %s: %v", header.Filename, err))
				return
			}
			files = append(files, models.UploadedFile{Name: header.Filename, Data: data})
		}
	}

	if len(files) == 0 {
		WriteError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	text, fileErrors := h.extract.ExtractAll(r.Context(), files)
	if strings.TrimSpace(text) == "" {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"status":      "error",
			"error":       "no text could be extracted from the uploaded files",
			"file_errors": fileErrors,
		})
		return
	}

	fields, err := h.synth.ExtractFields(r.Context(), text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int("files", len(files)).
			Msg("Field extraction failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"fields":      fields,
		"file_errors": fileErrors,
	})
}
