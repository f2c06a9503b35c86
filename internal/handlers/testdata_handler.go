package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/interfaces"
)

// TestDataHandler generates sample company data for exercising the memo form.
type TestDataHandler struct {
	logger arbor.ILogger
	synth  interfaces.SynthService
}

func NewTestDataHandler(synthService interfaces.SynthService) *TestDataHandler {
	return &TestDataHandler{
		logger: common.GetLogger(),
		synth:  synthService,
	}
}

// GenerateHandler handles POST /api/testdata
func (h *TestDataHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	data := h.synth.GenerateTestData(r.Context())
	WriteJSON(w, http.StatusOK, data)
}
