package api

import (
	"net/http"

	"github.com/huangsam/heatgate/core/layout"
	"github.com/huangsam/heatgate/internal/contract"
)

func (h *Handler) handleTooltipPosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		width, x, y         float64
		scrollbar, viewport float64
		dpr                 float64
		err                 error
	)
	if width, err = requiredFloatParam(q, "width"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if x, err = requiredFloatParam(q, "x"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if y, err = requiredFloatParam(q, "y"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if scrollbar, err = floatParam(q, "scrollbar_width", 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if viewport, err = floatParam(q, "viewport_width", contract.DefaultViewportWidth); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dpr, err = floatParam(q, "dpr", 1); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, layout.TooltipPosition(width, scrollbar, x, y, viewport, dpr))
}
