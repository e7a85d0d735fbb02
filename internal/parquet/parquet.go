// Package parquet provides data structures and functions for exporting heatgate
// evaluations and heatmaps to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/heatgate/schema"
	"github.com/parquet-go/parquet-go"
)

// Evaluation is one stored evaluation.
// This struct maps to the heatgate_evaluations database table.
type Evaluation struct {
	ID                  string    `parquet:"id,snappy"`
	Time                time.Time `parquet:"eval_time,snappy"`
	Project             string    `parquet:"project,snappy"`
	Stage               string    `parquet:"stage,snappy"`
	Service             string    `parquet:"service,snappy"`
	Score               float64   `parquet:"score,snappy"`
	Result              string    `parquet:"result,snappy"`
	ComparedEvaluations string    `parquet:"compared_evaluations,snappy"` // comma-separated ids

	// Thresholds are nullable
	ScorePassThreshold *float64 `parquet:"score_pass_threshold,optional,snappy"`
	ScoreWarnThreshold *float64 `parquet:"score_warn_threshold,optional,snappy"`
}

// IndicatorResult is one SLI outcome of an evaluation.
// This struct maps to the heatgate_indicator_results database table.
type IndicatorResult struct {
	EvaluationID string  `parquet:"evaluation_id,snappy"`
	Position     int32   `parquet:"position,snappy"`
	Metric       string  `parquet:"metric,snappy"`
	DisplayName  string  `parquet:"display_name,snappy"`
	Value        float64 `parquet:"value,snappy"`
	Success      bool    `parquet:"success,snappy"`
	Score        float64 `parquet:"score,snappy"`
	Status       string  `parquet:"status,snappy"`
	KeySLI       bool    `parquet:"key_sli,snappy"`
}

// HeatmapCell is one cell of a rendered heatmap.
type HeatmapCell struct {
	Row        string  `parquet:"row,snappy"`
	Column     string  `parquet:"column,snappy"`
	Identifier string  `parquet:"identifier,snappy"`
	Kind       string  `parquet:"kind,snappy"`
	Color      string  `parquet:"color,snappy"`
	Value      float64 `parquet:"value,snappy"`
	Visible    bool    `parquet:"visible,snappy"`
}

// ConvertEvaluations flattens evaluation records into evaluation and indicator rows.
func ConvertEvaluations(evs []schema.EvaluationRecord) ([]Evaluation, []IndicatorResult) {
	evaluations := make([]Evaluation, 0, len(evs))
	var indicators []IndicatorResult
	for _, ev := range evs {
		evaluations = append(evaluations, Evaluation{
			ID:                  ev.ID,
			Time:                ev.Time,
			Project:             ev.Project,
			Stage:               ev.Stage,
			Service:             ev.Service,
			Score:               ev.Score,
			Result:              string(ev.Result),
			ComparedEvaluations: strings.Join(ev.ComparedEvaluations, ","),
			ScorePassThreshold:  ev.ScorePassThreshold,
			ScoreWarnThreshold:  ev.ScoreWarnThreshold,
		})
		for i, ind := range ev.IndicatorResults {
			indicators = append(indicators, IndicatorResult{
				EvaluationID: ev.ID,
				Position:     int32(i),
				Metric:       ind.Metric,
				DisplayName:  ind.DisplayName,
				Value:        ind.Value.Value,
				Success:      ind.Value.Success,
				Score:        ind.Score,
				Status:       string(ind.Status),
				KeySLI:       ind.KeySLI,
			})
		}
	}
	return evaluations, indicators
}

// ConvertHeatmapRecords converts flattened heatmap records to parquet rows.
func ConvertHeatmapRecords(records []schema.HeatmapRecord) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(records))
	for _, r := range records {
		cells = append(cells, HeatmapCell{
			Row:        r.Row,
			Column:     r.Column,
			Identifier: r.Identifier,
			Kind:       string(r.Kind),
			Color:      string(r.Color),
			Value:      r.Value,
			Visible:    r.Visible,
		})
	}
	return cells
}

// Write writes rows of any parquet-tagged struct to w.
func Write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, data)
}
