package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/", s.app.PageHandler.ServePage("index.html", "home"))
	mux.HandleFunc("/memo", s.app.PageHandler.ServePage("memo.html", "memo"))

	// API routes - Memo generation and retrieval
	mux.HandleFunc("/api/memo", s.app.MemoHandler.GenerateMemoHandler) // POST - generate memo
	mux.HandleFunc("/api/memo/", s.handleMemoRoutes)                   // GET /{id}, GET /{id}/download
	mux.HandleFunc("/api/memos", s.app.MemoHandler.ListMemosHandler)   // GET - list memos

	// API routes - Document intake
	mux.HandleFunc("/api/extract", s.app.ExtractHandler.ExtractDocumentsHandler) // POST - multipart upload
	mux.HandleFunc("/api/drive/import", s.app.DriveHandler.ImportHandler)        // POST - Google Drive links

	// API routes - Test data
	mux.HandleFunc("/api/testdata", s.app.TestDataHandler.GenerateHandler) // POST - sample company

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleMemoRoutes routes /api/memo/{id} requests
func (s *Server) handleMemoRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if len(path) <= len("/api/memo/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	// GET /api/memo/{id}/download
	if strings.HasSuffix(path, "/download") {
		s.app.MemoHandler.DownloadMemoHandler(w, r)
		return
	}

	// GET /api/memo/{id}
	s.app.MemoHandler.GetMemoHandler(w, r)
}
