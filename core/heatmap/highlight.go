package heatmap

import (
	"github.com/huangsam/heatgate/schema"
)

// FindDataPoint returns the first point with the identifier, searching rows in order.
func FindDataPoint(grid *schema.GroupedGrid, id string) (schema.DataPoint, bool) {
	if grid == nil || id == "" {
		return schema.DataPoint{}, false
	}
	for _, row := range grid.Rows() {
		for _, p := range grid.Points(row) {
			if p.Identifier == id {
				return p, true
			}
		}
	}
	return schema.DataPoint{}, false
}

// ResolveHighlight locates the selected evaluation and the columns of the evaluations
// it was compared against. Unknown identifiers yield an empty highlight.
func ResolveHighlight(id string, grid *schema.GroupedGrid) schema.Highlight {
	point, ok := FindDataPoint(grid, id)
	if !ok {
		return schema.Highlight{}
	}

	h := schema.Highlight{Point: &point, Column: point.Column}
	for _, cid := range point.ComparedIdentifiers {
		compared, found := FindDataPoint(grid, cid)
		if !found {
			continue
		}
		h.Compared = append(h.Compared, schema.ComparedColumn{Identifier: cid, Column: compared.Column})
	}
	return h
}
