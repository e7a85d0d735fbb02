// Package api implements the heatgate REST API.
// It serves heatmaps, highlights, comparisons and tooltip placement for a web renderer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler is the top-level API handler.
// Every request builds its heatmap from scratch against the store.
type Handler struct {
	cfg *contract.Config
	mgr contract.StoreManager
}

// NewHandler creates a new API handler with cfg as the defaults for query parameters.
func NewHandler(cfg *contract.Config, mgr contract.StoreManager) *Handler {
	return &Handler{cfg: cfg, mgr: mgr}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/heatmap", instrument("heatmap", h.handleHeatmap))
	mux.HandleFunc("GET /api/heatmap/highlight/{id}", instrument("highlight", h.handleHighlight))
	mux.HandleFunc("GET /api/evaluations/{id}/comparison", instrument("comparison", h.handleComparison))
	mux.HandleFunc("GET /api/check", instrument("check", h.handleCheck))
	mux.HandleFunc("GET /api/tooltip-position", instrument("tooltip", h.handleTooltipPosition))
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if h.mgr == nil || h.mgr.GetEvaluationStore() == nil {
		writeError(w, http.StatusServiceUnavailable, "evaluation store is not initialized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store failures onto status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, contract.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
