package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// notAvailable is printed for values that cannot be shown.
const notAvailable = "n/a"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquetFiles runs a Parquet export and reports every file it wrote.
func writeParquetFiles(write func() ([]string, error)) error {
	files, err := write()
	if err != nil {
		return err
	}
	for _, f := range files {
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", f)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// renderTable writes a right-aligned table in the minimal look shared by every view.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// formatter renders numbers for tables and CSV files.
type formatter struct {
	precision int
}

func newFormatter(precision int) formatter {
	return formatter{precision: precision}
}

// float renders v with the configured precision.
func (f formatter) float(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', f.precision, 64)
}

// count renders a counter without decimals.
func (f formatter) count(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// raw renders v losslessly for machine-readable output. NaN is an empty cell.
func (f formatter) raw(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return notAvailable, true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

// formatDeviation renders a ratio as a percentage and colors it by sign when enabled.
// NaN cannot be classified and stays unstyled.
func formatDeviation(v float64, decimals int, useColors bool) string {
	text := schema.FormatPercent(v, decimals)
	if !useColors {
		return text
	}
	return contract.ColorizeBySign(v, text)
}

// formatDelta renders a tile delta with a direction arrow.
func formatDelta(v float64, useColors bool) string {
	text := schema.FormatPercent(v, 2)
	sign, ok := contract.ClassifySign(v)
	if !ok {
		return text
	}
	switch sign {
	case contract.SignPositive:
		text = "▲ " + text
	case contract.SignNegative:
		text = "▼ " + text
	}
	if !useColors {
		return text
	}
	return contract.ColorizeBySign(v, text)
}

// formatDuration renders whole seconds as H:MM:SS.
func formatDuration(v schema.VideoRecord) string {
	if v.AvgViewDuration == nil {
		return notAvailable
	}
	s := v.AvgDurationSec
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// headerLine prints a view header, with its emoji when enabled.
func headerLine(w io.Writer, cfg *contract.Config, emoji, text string) error {
	if cfg.UseEmojis {
		text = emoji + " " + text
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
