package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
)

// Width taken by the date column and by each deviation column.
const (
	dateColumnWidth      = 14
	deviationColumnWidth = 9
)

// writeAggregateTable writes the headline tiles followed by the deviation table.
func writeAggregateTable(w io.Writer, result schema.BenchmarkResult, cfg *contract.Config, f formatter, duration time.Duration) error {
	channel := filepath.Base(cfg.DataDir)
	if channel == "" || channel == "." {
		channel = "current"
	}
	if err := headerLine(w, cfg, "📺", fmt.Sprintf("Channel: %s (6-month videos: %d, 12-month videos: %d)", channel, result.Rows6, result.Rows12)); err != nil {
		return err
	}
	if err := headerLine(w, cfg, "📅", fmt.Sprintf("Window: %s → %s", schema.FormatDate(result.Cutoff12), schema.FormatDate(result.MaxPublish))); err != nil {
		return err
	}

	// 1. Tiles
	tiles := make([][]string, 0, len(schema.HeadlineMetrics))
	for _, key := range schema.HeadlineMetrics {
		m, ok := result.Median(key)
		if !ok {
			continue
		}
		tiles = append(tiles, []string{
			string(key),
			newFormatter(1).float(schema.RoundTo(m.Median6, 1)),
			f.float(m.Median12),
			formatDelta(m.Delta, cfg.UseColors),
		})
	}
	if err := renderTable(w, []string{"Metric", "6mo Median", "12mo Median", "Delta"}, tiles); err != nil {
		return err
	}

	// 2. Deviation table
	headers := []string{"Video title", "Publish date"}
	for _, key := range schema.HeadlineMetrics {
		headers = append(headers, string(key))
	}
	titleWidth := getMaxTitleWidth(cfg, dateColumnWidth+deviationColumnWidth*len(schema.HeadlineMetrics))
	rows := make([][]string, 0, len(result.Deviations))
	for _, d := range result.Deviations {
		row := []string{contract.TruncateText(d.Title, titleWidth), schema.FormatDate(d.PublishDate)}
		for _, key := range schema.HeadlineMetrics {
			row = append(row, formatDeviation(d.Values[key], 1, cfg.UseColors))
		}
		rows = append(rows, row)
	}
	if err := renderTable(w, headers, rows); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d videos against the 12-month median\n", len(result.Deviations)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Aggregate completed in %v. Run history backend: %s\n", duration, cfg.AnalysisBackend); err != nil {
		return err
	}
	return nil
}

// writeAggregateCSV writes the full deviation table, one column per numeric metric.
func writeAggregateCSV(w io.Writer, result schema.BenchmarkResult, f formatter) error {
	header := []string{"video_id", "title", "publish_date"}
	for _, key := range schema.NumericMetrics {
		header = append(header, string(key))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Deviations {
			rec := []string{d.VideoID, d.Title, schema.FormatDate(d.PublishDate)}
			for _, key := range schema.NumericMetrics {
				rec = append(rec, f.raw(d.Values[key]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
