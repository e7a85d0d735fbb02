package schema

// HeatmapResult is the complete heatmap payload for one project, stage and service.
type HeatmapResult struct {
	Project     string       `json:"project"`
	Stage       string       `json:"stage"`
	Service     string       `json:"service"`
	Evaluations int          `json:"evaluations"`
	Grid        *GroupedGrid `json:"grid"`
	Layout      LayoutResult `json:"layout"`
}

// HeatmapRecord is the flat, per-cell form of a heatmap used by tabular outputs.
type HeatmapRecord struct {
	Row        string         `json:"row"`
	Column     string         `json:"column"`
	Identifier string         `json:"identifier"`
	Kind       TooltipKind    `json:"kind"`
	Color      Classification `json:"color"`
	Value      float64        `json:"value"`
	Visible    bool           `json:"visible"`
}

// FlattenHeatmap returns one record per grid point in row insertion order.
// Visible marks points that fall on a row currently shown by the axis view.
func FlattenHeatmap(result HeatmapResult) []HeatmapRecord {
	if result.Grid == nil {
		return nil
	}
	visible := make(map[string]struct{}, len(result.Layout.Axis.Rows))
	for _, row := range result.Layout.Axis.Rows {
		visible[row] = struct{}{}
	}
	records := make([]HeatmapRecord, 0, result.Grid.Size())
	for _, row := range result.Grid.Rows() {
		_, shown := visible[row]
		for _, p := range result.Grid.Points(row) {
			records = append(records, HeatmapRecord{
				Row:        p.Row,
				Column:     p.Column,
				Identifier: p.Identifier,
				Kind:       p.Tooltip.Kind,
				Color:      p.Color,
				Value:      p.Value(),
				Visible:    shown,
			})
		}
	}
	return records
}
