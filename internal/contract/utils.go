package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/heatgate/schema"
)

// ErrNotFound is returned when an evaluation does not exist.
var ErrNotFound = errors.New("evaluation not found")

// Color variables for console output.
var (
	PassColor    = color.New(color.FgGreen)           // PassColor marks healthy cells.
	WarningColor = color.New(color.FgYellow)          // WarningColor marks cells close to a threshold.
	FailColor    = color.New(color.FgRed, color.Bold) // FailColor marks violated cells.
	InfoColor    = color.New(color.FgCyan)            // InfoColor marks cells without a usable result.
	MutedColor   = color.New(color.FgHiBlack)         // MutedColor marks cells hidden by the legend.
)

// GetPlainLabel returns the upper-case label for a classification.
func GetPlainLabel(c schema.Classification) string {
	switch c {
	case schema.PassResult:
		return "PASS"
	case schema.WarningResult:
		return "WARN"
	case schema.FailResult:
		return "FAIL"
	default:
		return "INFO"
	}
}

// ColorFor returns the console color for a classification.
func ColorFor(c schema.Classification) *color.Color {
	switch c {
	case schema.PassResult:
		return PassColor
	case schema.WarningResult:
		return WarningColor
	case schema.FailResult:
		return FailColor
	default:
		return InfoColor
	}
}

// GetColorLabel returns a colored label for console output (table).
func GetColorLabel(c schema.Classification) string {
	return ColorFor(c).Sprint(GetPlainLabel(c))
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for evaluation storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".heatgate.db"
	}
	return filepath.Join(homeDir, ".heatgate.db")
}

// TruncateLabel truncates a row label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
