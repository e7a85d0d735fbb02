package api

import (
	"net/http"

	"github.com/huangsam/heatgate/core"
)

func (h *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg.Selected = r.PathValue("id")

	result, err := core.GetComparisonResult(r.Context(), cfg, h.mgr)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCheck evaluates the quality gate on the newest evaluation.
// A failed gate is still a 200; clients read the passed field.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := core.GetCheckResult(r.Context(), cfg, h.mgr)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
