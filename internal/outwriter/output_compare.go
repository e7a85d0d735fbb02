package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the comparison, dispatching based on the output format configured.
func WriteComparisonResults(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeComparisonCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeComparisonTable(w, result, cfg, fmtFloat, duration)
	}
	return nil
}

// writeComparisonTable writes one line per indicator of the selected evaluation.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"SLI", "Value", "Compared", "Delta", "Delta %", "Score", "Result", "Status"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var red, green func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
	}

	labelWidth := getRowLabelWidth(getTermWidth(cfg))
	var data [][]string
	for _, d := range result.Details {
		status := string(d.Status)
		switch d.Status {
		case schema.RegressedStatus:
			status = red(status + " ▼")
		case schema.ImprovedStatus:
			status = green(status + " ▲")
		}
		row := contract.TruncateLabel(d.Row, labelWidth)
		if d.KeySLI {
			row += " *"
		}
		compared, delta, deltaPct := "-", "-", "-"
		if d.Samples > 0 {
			compared = fmtFloat(d.ComparedValue)
			delta = formatDelta(d.Delta, cfg.Precision)
			deltaPct = formatDelta(d.DeltaPercent, cfg.Precision) + "%"
		}
		data = append(data, []string{
			row,
			fmtFloat(d.Value),
			compared,
			delta,
			deltaPct,
			fmtFloat(d.Score),
			colorize(contract.GetPlainLabel(d.Result), d.Result, cfg),
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Evaluation %s scored %s against a compared mean of %s (net %s)\n",
		result.EvaluationID, fmtFloat(result.Score), fmtFloat(s.ComparedScore), formatDelta(s.NetScoreDelta, cfg.Precision)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Improved: %d, Regressed: %d, Unchanged: %d, Missing: %d\n",
		s.TotalImproved, s.TotalRegressed, s.TotalUnchanged, s.TotalMissing); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Compared with %d evaluations (%d not found) in %v\n", s.ComparedEvaluations, s.MissingEvaluations, duration); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes the comparison details to CSV.
func writeComparisonCSV(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{
		"evaluation_id",
		"row",
		"metric",
		"value",
		"compared_value",
		"delta",
		"delta_percent",
		"score",
		"compared_score",
		"samples",
		"result",
		"status",
		"key_sli",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Details {
			rec := []string{
				result.EvaluationID,
				d.Row,
				d.Metric,
				fmtFloat(d.Value),
				fmtFloat(d.ComparedValue),
				fmtFloat(d.Delta),
				fmtFloat(d.DeltaPercent),
				fmtFloat(d.Score),
				fmtFloat(d.ComparedScore),
				strconv.Itoa(d.Samples),
				string(d.Result),
				string(d.Status),
				strconv.FormatBool(d.KeySLI),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
