package schema

// Default layout values.
const (
	DefaultRowHeight      = 30.0
	DefaultXAxisHeight    = 70.0
	DefaultLegendHeight   = 40.0
	DefaultShowMoreHeight = 35.0
	DefaultMinColumnWidth = 25.0
	DefaultMarginLeft     = 150.0
	DefaultTooltipOffset  = 5.0
)

// Position is a top/left placement in pixels.
type Position struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins surround the drawing area of the heatmap.
type Margins struct {
	Top    float64 `json:"top" mapstructure:"top"`
	Right  float64 `json:"right" mapstructure:"right"`
	Bottom float64 `json:"bottom" mapstructure:"bottom"`
	Left   float64 `json:"left" mapstructure:"left"`
}

// LayoutSettings holds the fixed geometry of the heatmap.
type LayoutSettings struct {
	RowHeight      float64 `json:"row_height"`
	XAxisHeight    float64 `json:"x_axis_height"`
	LegendHeight   float64 `json:"legend_height"`
	ShowMoreHeight float64 `json:"show_more_height"`
	MinColumnWidth float64 `json:"min_column_width"`
	Margins        Margins `json:"margins"`
}

// DefaultLayoutSettings returns the stock geometry.
func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		RowHeight:      DefaultRowHeight,
		XAxisHeight:    DefaultXAxisHeight,
		LegendHeight:   DefaultLegendHeight,
		ShowMoreHeight: DefaultShowMoreHeight,
		MinColumnWidth: DefaultMinColumnWidth,
		Margins:        Margins{Left: DefaultMarginLeft},
	}
}

// Band is a highlighted column rectangle.
type Band struct {
	Column  string  `json:"column"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Primary bool    `json:"primary"`
}

// Cell is a positioned data point.
type Cell struct {
	Row        string         `json:"row"`
	Column     string         `json:"column"`
	Identifier string         `json:"identifier"`
	Color      Classification `json:"color"`
	Value      float64        `json:"value"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Disabled   bool           `json:"disabled"`
}

// LayoutResult is everything a renderer needs to draw one frame of the heatmap.
type LayoutResult struct {
	State        ExpandState `json:"state"`
	Axis         AxisView    `json:"axis"`
	Ticks        []string    `json:"ticks"`
	Content      Size        `json:"content"`
	CanvasHeight float64     `json:"canvas_height"`
	BandWidth    float64     `json:"band_width"`
	Cells        []Cell      `json:"cells"`
	Highlight    *Highlight  `json:"highlight,omitempty"`
	Bands        []Band      `json:"bands,omitempty"`
	Legend       LegendState `json:"legend"`
}

// LegendState records which classifications are hidden by the legend.
// It is a value; Toggle returns a new state and leaves the receiver untouched.
type LegendState struct {
	Disabled []Classification `json:"disabled,omitempty"`
}

// IsDisabled reports whether cells of the given classification are hidden.
func (l LegendState) IsDisabled(c Classification) bool {
	for _, d := range l.Disabled {
		if d == c {
			return true
		}
	}
	return false
}

// Toggle flips the given classification.
func (l LegendState) Toggle(c Classification) LegendState {
	next := LegendState{}
	found := false
	for _, d := range l.Disabled {
		if d == c {
			found = true
			continue
		}
		next.Disabled = append(next.Disabled, d)
	}
	if !found {
		next.Disabled = append(next.Disabled, c)
	}
	return next
}
