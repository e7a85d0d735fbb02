package layout

import (
	"fmt"
	"testing"

	"github.com/huangsam/heatgate/core/heatmap"
	"github.com/huangsam/heatgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTooltipPosition tests right placement and the left flip near the viewport edge.
func TestTooltipPosition(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		scrollbar float64
		x, y      float64
		viewport  float64
		dpr       float64
		want      schema.Position
	}{
		{name: "fits on the right", width: 100, x: 388, y: 250, viewport: 1000, dpr: 2, want: schema.Position{Top: 255, Left: 393}},
		{name: "scrollbar pushes it left", width: 100, scrollbar: 20, x: 388, y: 250, viewport: 1000, dpr: 2, want: schema.Position{Top: 255, Left: 293}},
		{name: "zero ratio treated as one", width: 100, x: 10, y: 0, viewport: 200, dpr: 0, want: schema.Position{Top: 5, Left: 15}},
		{name: "flip at dpr one", width: 150, x: 900, y: 10, viewport: 1000, dpr: 1, want: schema.Position{Top: 15, Left: 755}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TooltipPosition(tt.width, tt.scrollbar, tt.x, tt.y, tt.viewport, tt.dpr)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCanvasHeight tests the height allowances.
func TestCanvasHeight(t *testing.T) {
	s := schema.DefaultLayoutSettings()
	assert.Equal(t, 4*30.0+70+40, CanvasHeight(4, false, s))
	assert.Equal(t, 10*30.0+70+40+35, CanvasHeight(10, true, s))
	assert.Equal(t, 110.0, CanvasHeight(0, false, s))
}

// TestContentSize tests margin subtraction and clamping.
func TestContentSize(t *testing.T) {
	m := schema.Margins{Left: 150, Right: 10, Top: 5, Bottom: 5}
	assert.Equal(t, schema.Size{Width: 840, Height: 290}, ContentSize(schema.Size{Width: 1000, Height: 300}, m))
	assert.Equal(t, schema.Size{}, ContentSize(schema.Size{Width: 100, Height: 5}, m))
}

// TestHighlightBands tests band geometry for the primary and compared columns.
func TestHighlightBands(t *testing.T) {
	columns := []string{"t0", "t1", "t2", "t3"}
	h := schema.Highlight{
		Point:  &schema.DataPoint{Identifier: "e3", Column: "t3"},
		Column: "t3",
		Compared: []schema.ComparedColumn{
			{Identifier: "e1", Column: "t1"},
			{Identifier: "gone", Column: "t9"},
		},
	}
	bands := HighlightBands(h, columns, 400, 3, 30)
	require.Len(t, bands, 2)
	assert.Equal(t, schema.Band{Column: "t3", X: 300, Width: 100, Height: 90, Primary: true}, bands[0])
	assert.Equal(t, schema.Band{Column: "t1", X: 100, Width: 100, Height: 90}, bands[1])

	assert.Nil(t, HighlightBands(schema.Highlight{}, columns, 400, 3, 30))
}

func sampleGrid(metrics, evaluations int) *schema.GroupedGrid {
	var points []schema.DataPoint
	for e := range evaluations {
		col := fmt.Sprintf("t%d", e)
		id := fmt.Sprintf("e%d", e)
		points = append(points, schema.DataPoint{Row: schema.ScoreRow, Column: col, Identifier: id, Color: schema.PassResult,
			Tooltip: schema.Tooltip{Kind: schema.ScoreTooltipKind, Score: &schema.ScoreTooltip{Value: 90}}})
		for m := range metrics {
			points = append(points, schema.DataPoint{Row: fmt.Sprintf("m%d", m), Column: col, Identifier: id, Color: schema.FailResult,
				Tooltip: schema.Tooltip{Kind: schema.SLITooltipKind, SLI: &schema.SLITooltip{Value: float64(m)}}})
		}
	}
	return heatmap.BuildGrid(points)
}

// TestViewCollapseIsDeterministic checks that 12 rows with limit 10 collapse
// back to the same slice after expanding.
func TestViewCollapseIsDeterministic(t *testing.T) {
	v := NewView(sampleGrid(11, 2), 10, schema.DefaultLayoutSettings())

	before := v.Axis()
	assert.Equal(t, 12, before.TotalRows)
	require.Len(t, before.Rows, 10)
	assert.True(t, before.HasMore)
	assert.Equal(t, []string{"m8", "m7", "m6", "m5", "m4", "m3", "m2", "m1", "m0", schema.ScoreRow}, before.Rows)

	v.Toggle()
	expanded := v.Axis()
	assert.Len(t, expanded.Rows, 12)
	assert.True(t, expanded.HasMore)

	v.Toggle()
	after := v.Axis()
	assert.Equal(t, before.Rows, after.Rows)
	assert.Equal(t, before.Columns, after.Columns)
	assert.True(t, after.HasMore)
}

// TestView tests the expand/collapse state machine and derived geometry.
func TestView(t *testing.T) {
	grid := sampleGrid(12, 4)
	v := NewView(grid, 10, schema.DefaultLayoutSettings())
	container := schema.Size{Width: 550, Height: 600}

	t.Run("starts collapsed", func(t *testing.T) {
		assert.Equal(t, schema.CollapsedState, v.State())
		res := v.Layout(container, schema.LegendState{}, "")
		assert.Len(t, res.Axis.Rows, 10)
		assert.True(t, res.Axis.HasMore)
		assert.Equal(t, 10*30.0+70+40+35, res.CanvasHeight)
		assert.Equal(t, 400.0, res.Content.Width)
		assert.Equal(t, 100.0, res.BandWidth)
		assert.Len(t, res.Cells, 40)
		assert.Nil(t, res.Highlight)
	})

	t.Run("toggle expands and back", func(t *testing.T) {
		assert.Equal(t, schema.ExpandedState, v.Toggle())
		res := v.Layout(container, schema.LegendState{}, "")
		assert.Len(t, res.Axis.Rows, 13)
		assert.Equal(t, 13*30.0+70+40+35, res.CanvasHeight)
		assert.Len(t, res.Cells, 52)
		assert.Equal(t, schema.CollapsedState, v.Toggle())
	})

	t.Run("expand and collapse are explicit", func(t *testing.T) {
		v.Expand()
		assert.Equal(t, schema.ExpandedState, v.State())
		v.Collapse()
		assert.Equal(t, schema.CollapsedState, v.State())
	})

	t.Run("legend disables cells", func(t *testing.T) {
		legend := schema.LegendState{}.Toggle(schema.FailResult)
		res := v.Layout(container, legend, "")
		for _, c := range res.Cells {
			assert.Equal(t, c.Color == schema.FailResult, c.Disabled)
		}
	})

	t.Run("cells are positioned top down", func(t *testing.T) {
		res := v.Layout(container, schema.LegendState{}, "")
		first := res.Cells[0]
		assert.Equal(t, res.Axis.Rows[0], first.Row)
		assert.Equal(t, 0.0, first.Y)
		last := res.Cells[len(res.Cells)-1]
		assert.Equal(t, schema.ScoreRow, last.Row)
		assert.Equal(t, 9*30.0, last.Y)
		assert.Equal(t, 300.0, last.X)
		assert.Equal(t, 90.0, last.Value)
	})

	t.Run("narrow container thins ticks", func(t *testing.T) {
		res := v.Layout(schema.Size{Width: 230}, schema.LegendState{}, "")
		assert.Equal(t, []string{"t1", "t3"}, res.Ticks)
	})

	t.Run("selection resolves to bands", func(t *testing.T) {
		res := v.Layout(container, schema.LegendState{}, "e2")
		require.NotNil(t, res.Highlight)
		require.Len(t, res.Bands, 1)
		assert.Equal(t, 200.0, res.Bands[0].X)
		assert.Equal(t, 300.0, res.Bands[0].Height)

		none := v.Layout(container, schema.LegendState{}, "e99")
		assert.Nil(t, none.Highlight)
		assert.Empty(t, none.Bands)
	})
}
