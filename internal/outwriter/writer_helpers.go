package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

// writeWithFile sends output to stdout, or to outputFile when one is set.
// A file write is confirmed on stderr so that stdout stays clean for piping.
func writeWithFile(outputFile string, write func(io.Writer) error, done string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if file == os.Stdout {
		return write(file)
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outputFile, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s to %s\n", done, outputFile)
	return nil
}

// writeJSON encodes data as two-space indented JSON.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes the header, lets writeRows fill in the records
// and reports any error the csv writer buffered while flushing.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(cw); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// createFormatter creates the float formatter shared by every output type.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// formatDelta prefixes positive deltas with a plus sign.
func formatDelta(v float64, precision int) string {
	if v > 0 {
		return fmt.Sprintf("+%.*f", precision, v)
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// colorize paints text with the classification color when colors are on.
func colorize(text string, c schema.Classification, cfg *contract.Config) string {
	if !cfg.UseColors {
		return text
	}
	return contract.ColorFor(c).Sprint(text)
}

// errParquetUnsupported is returned for outputs without a tabular Parquet form.
var errParquetUnsupported = fmt.Errorf("%s output is only supported by the heatmap and store export commands", schema.ParquetOut)
