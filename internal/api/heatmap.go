package api

import (
	"net/http"

	"github.com/huangsam/heatgate/core"
	"github.com/huangsam/heatgate/schema"
)

func (h *Handler) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg, err := h.requestConfig(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	legend, err := parseLegend(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	container := core.DefaultContainer(cfg)
	if container.Width, err = floatParam(q, "width", container.Width); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if container.Height, err = floatParam(q, "height", container.Height); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if container.Width < 0 || container.Height < 0 {
		writeError(w, http.StatusBadRequest, "width and height cannot be negative")
		return
	}

	result, err := core.GetHeatmapResultFor(r.Context(), cfg, h.mgr, container, legend)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	heatmapPoints.WithLabelValues(projectLabel(h.cfg.Project, cfg.Project)).Set(float64(result.Grid.Size()))
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHighlight(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg.Selected = r.PathValue("id")

	hl, err := core.GetHighlightResult(r.Context(), cfg, h.mgr)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !hl.Found() {
		writeError(w, http.StatusNotFound, "evaluation "+cfg.Selected+" is not in the heatmap window")
		return
	}
	writeJSON(w, http.StatusOK, highlightResponse{
		Highlight: hl,
		Columns:   columnsOf(hl),
	})
}

// highlightResponse lists the columns to band, selected column first.
type highlightResponse struct {
	schema.Highlight
	Columns []string `json:"columns"`
}

func columnsOf(hl schema.Highlight) []string {
	columns := []string{hl.Column}
	for _, c := range hl.Compared {
		columns = append(columns, c.Column)
	}
	return columns
}
