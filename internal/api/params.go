package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

// requestConfig overlays the query parameters on a copy of the server defaults.
func (h *Handler) requestConfig(q url.Values) (*contract.Config, error) {
	cfg := h.cfg.Clone()
	if v := strings.TrimSpace(q.Get("project")); v != "" {
		cfg.Project = v
	}
	if v := strings.TrimSpace(q.Get("stage")); v != "" {
		cfg.Stage = v
	}
	if v := strings.TrimSpace(q.Get("service")); v != "" {
		cfg.Service = v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > contract.MaxResultLimit {
			return nil, fmt.Errorf("limit must be between 1 and %d", contract.MaxResultLimit)
		}
		cfg.RowLimit = n
	}
	if v := q.Get("history_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > contract.MaxResultLimit {
			return nil, fmt.Errorf("history_limit must be between 1 and %d", contract.MaxResultLimit)
		}
		cfg.HistoryLimit = n
	}
	if v := q.Get("expanded"); v != "" {
		expanded, err := contract.ParseBoolString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid expanded: %w", err)
		}
		cfg.Expanded = expanded
	}
	if v := q.Get("fail_on_warning"); v != "" {
		fow, err := contract.ParseBoolString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid fail_on_warning: %w", err)
		}
		cfg.FailOnWarning = fow
	}
	if v := strings.TrimSpace(q.Get("before")); v != "" {
		t, err := contract.ParseBefore(v, time.Now())
		if err != nil {
			return nil, err
		}
		cfg.Before = t
	}
	cfg.Selected = strings.TrimSpace(q.Get("select"))
	return cfg, nil
}

// parseLegend reads a comma separated list of hidden classifications.
func parseLegend(q url.Values) (schema.LegendState, error) {
	legend := schema.LegendState{}
	for _, part := range strings.Split(q.Get("disabled"), ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		c := schema.Classification(part)
		if _, ok := schema.ValidClassifications[c]; !ok {
			return legend, fmt.Errorf("unknown classification %q", part)
		}
		if !legend.IsDisabled(c) {
			legend = legend.Toggle(c)
		}
	}
	return legend, nil
}

// floatParam parses an optional float query parameter.
func floatParam(q url.Values, name string, fallback float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return f, nil
}

// requiredFloatParam parses a float query parameter that must be present.
func requiredFloatParam(q url.Values, name string) (float64, error) {
	if q.Get(name) == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	return floatParam(q, name, 0)
}
