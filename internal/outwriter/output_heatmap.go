package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/heatgate/core/heatmap"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/parquet"
	"github.com/huangsam/heatgate/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHeatmapResults outputs the heatmap, dispatching based on the output format configured.
func WriteHeatmapResults(w io.Writer, result schema.HeatmapResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeHeatmapCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		cells := parquet.ConvertHeatmapRecords(schema.FlattenHeatmap(result))
		if err := parquet.Write(w, cells); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeHeatmapTable(w, result, cfg, fmtFloat, duration)
	}
	return nil
}

// writeHeatmapCSV writes one line per grid point.
func writeHeatmapCSV(w io.Writer, result schema.HeatmapResult, fmtFloat func(float64) string) error {
	header := []string{"row", "column", "identifier", "kind", "color", "value", "visible"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range schema.FlattenHeatmap(result) {
			rec := []string{
				r.Row,
				r.Column,
				r.Identifier,
				string(r.Kind),
				string(r.Color),
				fmtFloat(r.Value),
				strconv.FormatBool(r.Visible),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHeatmapTable draws the visible rows against the newest columns that fit the terminal.
func writeHeatmapTable(w io.Writer, result schema.HeatmapResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	axis := result.Layout.Axis
	if len(axis.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No evaluations found for project=%q stage=%q service=%q\n", result.Project, result.Stage, result.Service)
		return err
	}

	termWidth := getTermWidth(cfg)
	labelWidth := getRowLabelWidth(termWidth)
	columns := axis.Columns
	if maxCols := getMaxTableColumns(termWidth); len(columns) > maxCols {
		columns = columns[len(columns)-maxCols:]
	}

	// Only every other column is labeled when the headers would not fit
	contentWidth := float64(termWidth - labelWidth - 4)
	labeled := make(map[string]struct{}, len(columns))
	for _, c := range heatmap.ThinColumns(columns, contentWidth, minHeaderWidth) {
		labeled[c] = struct{}{}
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	headers := []string{"SLI"}
	for _, c := range columns {
		if _, ok := labeled[c]; ok {
			headers = append(headers, c)
		} else {
			headers = append(headers, "")
		}
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft}
	})

	var data [][]string
	for _, row := range axis.Rows {
		byColumn := make(map[string]schema.DataPoint)
		for _, p := range result.Grid.Points(row) {
			byColumn[p.Column] = p
		}
		line := []string{contract.TruncateLabel(row, labelWidth)}
		for _, c := range columns {
			p, ok := byColumn[c]
			if !ok {
				line = append(line, "")
				continue
			}
			line = append(line, formatCell(p, cfg, fmtFloat))
		}
		data = append(data, line)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if axis.HasMore && !axis.Expanded {
		if _, err := fmt.Fprintf(w, "Showing %d of %d rows (use --expanded to show all)\n", len(axis.Rows), axis.TotalRows); err != nil {
			return err
		}
	}
	if len(columns) < len(axis.Columns) {
		if _, err := fmt.Fprintf(w, "Showing the latest %d of %d evaluations\n", len(columns), len(axis.Columns)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Built from %d evaluations in %v. Store backend: %s\n", result.Evaluations, duration, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// formatCell shows the value colored by classification, or tagged with its label without colors.
func formatCell(p schema.DataPoint, cfg *contract.Config, fmtFloat func(float64) string) string {
	value := fmtFloat(p.Value())
	if cfg.UseColors {
		return colorize(value, p.Color, cfg)
	}
	return value + " " + contract.GetPlainLabel(p.Color)[:1]
}
