package schema

import (
	"encoding/json"
	"time"
)

// DataPoint is one heatmap cell.
// Row and Column may be renamed by deduplication; Identifier never is.
type DataPoint struct {
	Row                 string         `json:"row"`
	Column              string         `json:"column"`
	Identifier          string         `json:"identifier"`
	Time                time.Time      `json:"time"`
	Color               Classification `json:"color"`
	ComparedIdentifiers []string       `json:"compared_identifiers,omitempty"`
	Tooltip             Tooltip        `json:"tooltip"`
}

// Tooltip is a tagged union; exactly one of Score or SLI is set, matching Kind.
type Tooltip struct {
	Kind  TooltipKind   `json:"kind"`
	Score *ScoreTooltip `json:"score,omitempty"`
	SLI   *SLITooltip   `json:"sli,omitempty"`
}

// ScoreTooltip describes the evaluation score cell.
type ScoreTooltip struct {
	Value             float64 `json:"value"`
	PassCount         int     `json:"pass_count"`
	WarningCount      int     `json:"warning_count"`
	FailedCount       int     `json:"failed_count"`
	KeySLIFailedCount int     `json:"key_sli_failed_count"`
	KeySLICount       int     `json:"key_sli_count"`
	PassThreshold     float64 `json:"pass_threshold"`
	WarnThreshold     float64 `json:"warn_threshold"`
	IsFail            bool    `json:"is_fail"`
	IsWarn            bool    `json:"is_warn"`
}

// SLITooltip describes a single indicator cell.
type SLITooltip struct {
	Value            float64  `json:"value"`
	IsKeySLI         bool     `json:"is_key_sli"`
	ContributedScore float64  `json:"contributed_score"`
	PassTargets      []Target `json:"pass_targets,omitempty"`
	WarningTargets   []Target `json:"warning_targets,omitempty"`
}

// Value returns the numeric value shown in the cell, whichever tooltip kind it carries.
func (p DataPoint) Value() float64 {
	switch {
	case p.Tooltip.Score != nil:
		return p.Tooltip.Score.Value
	case p.Tooltip.SLI != nil:
		return p.Tooltip.SLI.Value
	default:
		return 0
	}
}

// GroupedGrid maps row labels to their points, preserving first-seen row order.
type GroupedGrid struct {
	order  []string
	points map[string][]DataPoint
}

// NewGroupedGrid returns an empty grid.
func NewGroupedGrid() *GroupedGrid {
	return &GroupedGrid{points: make(map[string][]DataPoint)}
}

// Append adds a point under its row, registering the row on first sight.
func (g *GroupedGrid) Append(p DataPoint) {
	if _, ok := g.points[p.Row]; !ok {
		g.order = append(g.order, p.Row)
	}
	g.points[p.Row] = append(g.points[p.Row], p)
}

// Rows returns the row labels in insertion order.
func (g *GroupedGrid) Rows() []string {
	rows := make([]string, len(g.order))
	copy(rows, g.order)
	return rows
}

// Points returns the points of a row in insertion order.
func (g *GroupedGrid) Points(row string) []DataPoint {
	return g.points[row]
}

// Len returns the number of rows.
func (g *GroupedGrid) Len() int {
	return len(g.order)
}

// Size returns the total number of points.
func (g *GroupedGrid) Size() int {
	total := 0
	for _, row := range g.order {
		total += len(g.points[row])
	}
	return total
}

// GridRow is the serialized form of one grid row.
type GridRow struct {
	Row    string      `json:"row"`
	Points []DataPoint `json:"points"`
}

// MarshalJSON encodes the grid as an ordered list of rows.
func (g *GroupedGrid) MarshalJSON() ([]byte, error) {
	rows := make([]GridRow, 0, len(g.order))
	for _, row := range g.order {
		rows = append(rows, GridRow{Row: row, Points: g.points[row]})
	}
	return json.Marshal(rows)
}

// AxisView is the visible slice of the grid.
type AxisView struct {
	Rows      []string `json:"rows"`
	Columns   []string `json:"columns"`
	HasMore   bool     `json:"has_more"`
	Expanded  bool     `json:"expanded"`
	TotalRows int      `json:"total_rows"`
}

// Highlight is the resolved selection of a data point and its comparisons.
type Highlight struct {
	Point    *DataPoint       `json:"point,omitempty"`
	Column   string           `json:"column,omitempty"`
	Compared []ComparedColumn `json:"compared,omitempty"`
}

// ComparedColumn is a compared evaluation located on the column axis.
type ComparedColumn struct {
	Identifier string `json:"identifier"`
	Column     string `json:"column"`
}

// Found reports whether the highlight resolved to a point.
func (h Highlight) Found() bool {
	return h.Point != nil
}
