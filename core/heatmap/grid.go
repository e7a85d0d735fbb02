package heatmap

import (
	"slices"

	"github.com/huangsam/heatgate/schema"
)

// DefaultRowLimit is the number of rows shown while collapsed.
const DefaultRowLimit = 10

// BuildGrid groups points by row, keeping first-seen row order.
func BuildGrid(points []schema.DataPoint) *schema.GroupedGrid {
	grid := schema.NewGroupedGrid()
	for _, p := range points {
		grid.Append(p)
	}
	return grid
}

// AxisView derives the visible rows and columns of the grid.
// Rows are listed newest first; the collapsed view keeps the last limit rows of
// that list so the score row stays visible.
func AxisView(grid *schema.GroupedGrid, limit int, expanded bool) schema.AxisView {
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	rows := grid.Rows()
	slices.Reverse(rows)

	view := schema.AxisView{
		HasMore:   len(rows) > limit,
		Expanded:  expanded,
		TotalRows: len(rows),
	}
	if view.HasMore && !expanded {
		rows = rows[len(rows)-limit:]
	}
	view.Rows = rows
	view.Columns = visibleColumns(grid, rows)
	return view
}

// visibleColumns walks the visible rows in insertion order and collects their columns.
func visibleColumns(grid *schema.GroupedGrid, rows []string) []string {
	ordered := slices.Clone(rows)
	slices.Reverse(ordered)

	seen := make(map[string]struct{})
	columns := []string{}
	for _, row := range ordered {
		for _, p := range grid.Points(row) {
			if _, ok := seen[p.Column]; ok {
				continue
			}
			seen[p.Column] = struct{}{}
			columns = append(columns, p.Column)
		}
	}
	return columns
}

// ThinColumns drops every other column label when they would be narrower than minWidth.
// The most recent column is always kept.
func ThinColumns(columns []string, contentWidth, minWidth float64) []string {
	n := len(columns)
	if n == 0 {
		return []string{}
	}
	if minWidth <= 0 {
		minWidth = schema.DefaultMinColumnWidth
	}
	if contentWidth/float64(n) >= minWidth {
		return slices.Clone(columns)
	}
	thinned := make([]string, 0, n/2+1)
	for i, c := range columns {
		if i%2 != n%2 {
			thinned = append(thinned, c)
		}
	}
	return thinned
}
