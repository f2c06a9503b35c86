package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
)

// DriveHandler imports documents from Google Drive share links.
type DriveHandler struct {
	logger arbor.ILogger
	drive  interfaces.DriveService
	synth  interfaces.SynthService
}

func NewDriveHandler(driveService interfaces.DriveService, synthService interfaces.SynthService) *DriveHandler {
	return &DriveHandler{
		logger: common.GetLogger(),
		drive:  driveService,
		synth:  synthService,
	}
}

// ImportHandler handles POST /api/drive/import
func (h *DriveHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		Links []string `json:"links"`
	}
	if err := DecodeJSONBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Links) == 0 {
		WriteError(w, http.StatusBadRequest, "at least one Drive link or file ID is required")
		return
	}

	text, fileErrors, err := h.drive.ImportDocuments(r.Context(), req.Links)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if strings.TrimSpace(text) == "" {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"status":      "error",
			"error":       "no text could be extracted from the Drive files",
			"file_errors": fileErrors,
		})
		return
	}

	fields, err := h.synth.ExtractFields(r.Context(), text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int("links", len(req.Links)).
			Msg("Field extraction from Drive import failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"fields":      fields,
		"file_errors": fileErrors,
	})
}
