// Package layout computes the pixel geometry of the heatmap: canvas size,
// highlight bands, positioned cells and tooltip placement.
package layout

import "github.com/huangsam/heatgate/schema"

// TooltipPosition places a tooltip next to the cursor, flipping it to the left
// when the right-hand placement would run past the viewport.
func TooltipPosition(width, scrollbarWidth, cursorX, cursorY, viewportWidth, devicePixelRatio float64) schema.Position {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	offset := schema.DefaultTooltipOffset
	overflow := (cursorX+offset+width)*devicePixelRatio+scrollbarWidth > viewportWidth

	left := cursorX + offset
	if overflow {
		left = cursorX - width + offset
	}
	return schema.Position{Top: cursorY + offset, Left: left}
}
