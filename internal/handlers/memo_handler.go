package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// MemoHandler serves memo generation, retrieval, and download endpoints.
type MemoHandler struct {
	logger arbor.ILogger
	memo   interfaces.MemoService
	store  interfaces.MemoStore
	export interfaces.ExportService
}

func NewMemoHandler(memoService interfaces.MemoService, store interfaces.MemoStore, exportService interfaces.ExportService) *MemoHandler {
	return &MemoHandler{
		logger: common.GetLogger(),
		memo:   memoService,
		store:  store,
		export: exportService,
	}
}

// GenerateMemoHandler handles POST /api/memo
func (h *MemoHandler) GenerateMemoHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.MemoRequest
	if err := DecodeJSONBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := h.memo.Compose(r.Context(), &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("company", req.CompanyName).
			Msg("Memo generation failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// GetMemoHandler handles GET /api/memo/{id}
func (h *MemoHandler) GetMemoHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := memoIDFromPath(r.URL.Path)
	if id == "" {
		WriteError(w, http.StatusBadRequest, "memo ID is required")
		return
	}

	record, err := h.store.Get(id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// ListMemosHandler handles GET /api/memos
func (h *MemoHandler) ListMemosHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	records, err := h.store.List(limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// Strip memo bodies from the listing to keep the payload small
	type memoSummary struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
		CreatedAt   string `json:"created_at"`
	}
	summaries := make([]memoSummary, len(records))
	for i, rec := range records {
		summaries[i] = memoSummary{
			ID:          rec.ID,
			CompanyName: rec.CompanyName,
			CreatedAt:   rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"memos": summaries,
	})
}

// DownloadMemoHandler handles GET /api/memo/{id}/download?format=md|pdf
func (h *MemoHandler) DownloadMemoHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := memoIDFromPath(strings.TrimSuffix(r.URL.Path, "/download"))
	if id == "" {
		WriteError(w, http.StatusBadRequest, "memo ID is required")
		return
	}

	record, err := h.store.Get(id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "md"
	}

	var data []byte
	var contentType string
	switch format {
	case "md":
		data, err = h.export.RenderMarkdown(record)
		contentType = "text/markdown; charset=utf-8"
	case "pdf":
		data, err = h.export.RenderPDF(record)
		contentType = "application/pdf"
	default:
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format: %s", format))
		return
	}
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("memo_id", id).
			Str("format", format).
			Msg("Memo export failed")
		WriteServiceError(w, err)
		return
	}

	filename := h.export.Filename(record.CompanyName, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// memoIDFromPath extracts the memo ID from /api/memo/{id} style paths.
func memoIDFromPath(path string) string {
	const prefix = "/api/memo/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	id := strings.TrimPrefix(path, prefix)
	id, _, _ = strings.Cut(id, "/")
	return id
}
