package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Sign classifies a deviation for styling.
type Sign int

// Sign values.
const (
	SignUnknown Sign = iota // NaN, cannot classify
	SignNegative
	SignZero
	SignPositive
)

// Color variables for console output.
var (
	NegativeColor = color.New(color.FgRed)            // NegativeColor marks values below the benchmark.
	PositiveColor = color.New(color.FgGreen)          // PositiveColor marks values above the benchmark.
	HeaderColor   = color.New(color.FgCyan, color.Bold)
)

// ClassifySign returns the sign of v. NaN cannot be classified and reports false.
// Infinities classify like any other value.
func ClassifySign(v float64) (Sign, bool) {
	switch {
	case math.IsNaN(v):
		return SignUnknown, false
	case v < 0:
		return SignNegative, true
	case v > 0:
		return SignPositive, true
	default:
		return SignZero, true
	}
}

// ColorizeBySign paints text red or green depending on the sign of v.
// Zero and unclassifiable values are returned unstyled.
func ColorizeBySign(v float64, text string) string {
	sign, ok := ClassifySign(v)
	if !ok {
		return text
	}
	switch sign {
	case SignNegative:
		return NegativeColor.Sprint(text)
	case SignPositive:
		return PositiveColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for run history.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ytdash_analysis.db"
	}
	return filepath.Join(homeDir, ".ytdash_analysis.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
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
