package layout

import (
	"slices"

	"github.com/huangsam/heatgate/schema"
)

// ContentSize is the container minus margins, clamped at zero.
func ContentSize(container schema.Size, m schema.Margins) schema.Size {
	return schema.Size{
		Width:  max(0, container.Width-m.Left-m.Right),
		Height: max(0, container.Height-m.Top-m.Bottom),
	}
}

// CanvasHeight is the height needed to draw the visible rows plus the axis and legend blocks.
func CanvasHeight(visibleRows int, hasMore bool, s schema.LayoutSettings) float64 {
	h := float64(visibleRows)*s.RowHeight + s.XAxisHeight + s.LegendHeight
	if hasMore {
		h += s.ShowMoreHeight
	}
	return h
}

// BandWidth is the width of a single column.
func BandWidth(contentWidth float64, columns int) float64 {
	if columns <= 0 {
		return 0
	}
	return contentWidth / float64(columns)
}

// HighlightBands returns the primary band for the selected column followed by
// one band per compared column that is on the axis.
func HighlightBands(h schema.Highlight, columns []string, contentWidth float64, visibleRows int, rowHeight float64) []schema.Band {
	if !h.Found() {
		return nil
	}
	width := BandWidth(contentWidth, len(columns))
	height := float64(visibleRows) * rowHeight

	band := func(column string, primary bool) (schema.Band, bool) {
		idx := slices.Index(columns, column)
		if idx < 0 {
			return schema.Band{}, false
		}
		return schema.Band{
			Column:  column,
			X:       float64(idx) * width,
			Width:   width,
			Height:  height,
			Primary: primary,
		}, true
	}

	var bands []schema.Band
	if b, ok := band(h.Column, true); ok {
		bands = append(bands, b)
	}
	for _, c := range h.Compared {
		if b, ok := band(c.Column, false); ok {
			bands = append(bands, b)
		}
	}
	return bands
}

// Cells positions every visible point. Rows[0] is drawn at the top.
func Cells(grid *schema.GroupedGrid, axis schema.AxisView, contentWidth, rowHeight float64, legend schema.LegendState) []schema.Cell {
	width := BandWidth(contentWidth, len(axis.Columns))
	colIndex := make(map[string]int, len(axis.Columns))
	for i, c := range axis.Columns {
		colIndex[c] = i
	}

	cells := []schema.Cell{}
	for r, row := range axis.Rows {
		for _, p := range grid.Points(row) {
			idx, ok := colIndex[p.Column]
			if !ok {
				continue
			}
			cells = append(cells, schema.Cell{
				Row:        p.Row,
				Column:     p.Column,
				Identifier: p.Identifier,
				Color:      p.Color,
				Value:      p.Value(),
				X:          float64(idx) * width,
				Y:          float64(r) * rowHeight,
				Width:      width,
				Height:     rowHeight,
				Disabled:   legend.IsDisabled(p.Color),
			})
		}
	}
	return cells
}
