package outwriter

import (
	"os"

	"github.com/huangsam/heatgate/internal/contract"
	"golang.org/x/term"
)

const (
	fallbackTermWidth = 80 // Conservative default for narrow terminals and CI
	maxRowLabelWidth  = 32
	minRowLabelWidth  = 12
	cellWidth         = 9 // Value plus padding and a border
	minHeaderWidth    = 18
)

// getTermWidth returns the width override or the detected terminal width.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return fallbackTermWidth
	}
	return detectedWidth
}

// getRowLabelWidth sizes the row label column to a quarter of the terminal.
func getRowLabelWidth(termWidth int) int {
	return min(max(termWidth/4, minRowLabelWidth), maxRowLabelWidth)
}

// getMaxTableColumns is the number of evaluation columns that fit next to the row labels.
func getMaxTableColumns(termWidth int) int {
	available := termWidth - getRowLabelWidth(termWidth) - 4
	return max(available/cellWidth, 1)
}
