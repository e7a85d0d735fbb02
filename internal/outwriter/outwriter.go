// Package outwriter renders heatmaps, highlights and comparisons as tables, CSV, JSON or Parquet.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

// PrintHeatmapResult writes the heatmap to stdout or the configured output file.
func PrintHeatmapResult(result schema.HeatmapResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHeatmapResults(w, result, cfg, duration)
	}, "Wrote heatmap")
}

// PrintHighlightResult writes the resolved highlight to stdout or the configured output file.
func PrintHighlightResult(h schema.Highlight, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHighlightResults(w, h, cfg)
	}, "Wrote highlight")
}

// PrintComparisonResult writes the comparison to stdout or the configured output file.
func PrintComparisonResult(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResults(w, result, cfg, duration)
	}, "Wrote comparison")
}
