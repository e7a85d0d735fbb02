package layout

import (
	"github.com/huangsam/heatgate/core/heatmap"
	"github.com/huangsam/heatgate/schema"
)

// View holds the expand/collapse state over an immutable grid.
// Geometry is derived on every Layout call and never cached.
type View struct {
	grid     *schema.GroupedGrid
	limit    int
	settings schema.LayoutSettings
	state    schema.ExpandState
}

// NewView starts collapsed.
func NewView(grid *schema.GroupedGrid, limit int, settings schema.LayoutSettings) *View {
	if grid == nil {
		grid = schema.NewGroupedGrid()
	}
	return &View{grid: grid, limit: limit, settings: settings, state: schema.CollapsedState}
}

// State returns the current expand state.
func (v *View) State() schema.ExpandState { return v.state }

// Toggle switches between collapsed and expanded.
func (v *View) Toggle() schema.ExpandState {
	if v.state == schema.ExpandedState {
		v.state = schema.CollapsedState
	} else {
		v.state = schema.ExpandedState
	}
	return v.state
}

// Expand shows every row.
func (v *View) Expand() { v.state = schema.ExpandedState }

// Collapse caps the rows at the limit.
func (v *View) Collapse() { v.state = schema.CollapsedState }

// Axis returns the axis view for the current state.
func (v *View) Axis() schema.AxisView {
	return heatmap.AxisView(v.grid, v.limit, v.state == schema.ExpandedState)
}

// Layout derives the full frame geometry for the container, legend and selection.
// An empty selection or one not in the grid produces no highlight.
func (v *View) Layout(container schema.Size, legend schema.LegendState, selected string) schema.LayoutResult {
	s := v.settings
	axis := v.Axis()
	content := ContentSize(container, s.Margins)

	result := schema.LayoutResult{
		State:        v.state,
		Axis:         axis,
		Ticks:        heatmap.ThinColumns(axis.Columns, content.Width, s.MinColumnWidth),
		Content:      content,
		CanvasHeight: CanvasHeight(len(axis.Rows), axis.HasMore, s),
		BandWidth:    BandWidth(content.Width, len(axis.Columns)),
		Cells:        Cells(v.grid, axis, content.Width, s.RowHeight, legend),
		Legend:       legend,
	}
	if selected != "" {
		h := heatmap.ResolveHighlight(selected, v.grid)
		if h.Found() {
			result.Highlight = &h
			result.Bands = HighlightBands(h, axis.Columns, content.Width, len(axis.Rows), s.RowHeight)
		}
	}
	return result
}
