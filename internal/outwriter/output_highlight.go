package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteHighlightResults outputs a resolved highlight, dispatching based on the output format configured.
func WriteHighlightResults(w io.Writer, h schema.Highlight, cfg *contract.Config) error {
	if !h.Found() {
		return fmt.Errorf("nothing to highlight")
	}
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, h)
	case schema.CSVOut:
		header := []string{"identifier", "column", "compared_identifier", "compared_column"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			if len(h.Compared) == 0 {
				return cw.Write([]string{h.Point.Identifier, h.Column, "", ""})
			}
			for _, c := range h.Compared {
				if err := cw.Write([]string{h.Point.Identifier, h.Column, c.Identifier, c.Column}); err != nil {
					return err
				}
			}
			return nil
		})
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeHighlightTable(w, h, cfg, fmtFloat)
	}
}

func writeHighlightTable(w io.Writer, h schema.Highlight, cfg *contract.Config, fmtFloat func(float64) string) error {
	p := h.Point
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header([]string{"Field", "Value"})

	data := [][]string{
		{"Evaluation", p.Identifier},
		{"Column", h.Column},
		{"Result", colorize(contract.GetPlainLabel(p.Color), p.Color, cfg)},
	}
	switch {
	case p.Tooltip.Score != nil:
		s := p.Tooltip.Score
		data = append(data,
			[]string{"Score", fmtFloat(s.Value)},
			[]string{"Thresholds", fmt.Sprintf("pass=%s, warning=%s", fmtFloat(s.PassThreshold), fmtFloat(s.WarnThreshold))},
			[]string{"Indicators", fmt.Sprintf("pass=%d, warning=%d, failed=%d", s.PassCount, s.WarningCount, s.FailedCount)},
			[]string{"Key SLIs", fmt.Sprintf("%d of %d failed", s.KeySLIFailedCount, s.KeySLICount)},
		)
	case p.Tooltip.SLI != nil:
		s := p.Tooltip.SLI
		data = append(data,
			[]string{"Value", fmtFloat(s.Value)},
			[]string{"Key SLI", strconv.FormatBool(s.IsKeySLI)},
			[]string{"Contributed score", fmtFloat(s.ContributedScore)},
		)
	}

	compared := make([]string, 0, len(h.Compared))
	for _, c := range h.Compared {
		compared = append(compared, fmt.Sprintf("%s (%s)", c.Column, c.Identifier))
	}
	if len(compared) == 0 {
		compared = append(compared, "none in window")
	}
	data = append(data, []string{"Compared with", strings.Join(compared, "\n")})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
