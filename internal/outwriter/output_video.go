package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
)

// comparisonRow pairs the population band and the video trace of one day.
type comparisonRow struct {
	day   int
	band  *schema.PercentileBand
	point *schema.TracePoint
}

// comparisonRows merges bands and trace points by day, in ascending order.
func comparisonRows(c schema.ViewComparison) []comparisonRow {
	byDay := make(map[int]*comparisonRow)
	get := func(day int) *comparisonRow {
		r, ok := byDay[day]
		if !ok {
			r = &comparisonRow{day: day}
			byDay[day] = r
		}
		return r
	}
	for i := range c.Bands {
		get(c.Bands[i].Day).band = &c.Bands[i]
	}
	for i := range c.Video.Points {
		// a day reported twice keeps its first sample
		if r := get(c.Video.Points[i].Day); r.point == nil {
			r.point = &c.Video.Points[i]
		}
	}

	rows := make([]comparisonRow, 0, len(byDay))
	for _, r := range byDay {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b comparisonRow) int { return a.day - b.day })
	return rows
}

// writeVideoTables writes the summary, deviation, audience and comparison tables of one video.
func writeVideoTables(w io.Writer, a schema.VideoAnalysis, cfg *contract.Config, f formatter, duration time.Duration) error {
	v := a.Video
	if err := headerLine(w, cfg, "🎬", fmt.Sprintf("Video: %s (%s)", v.Title, v.ID)); err != nil {
		return err
	}
	if err := headerLine(w, cfg, "📅", fmt.Sprintf("Published: %s | Views: %s | Avg duration: %s | Comments: %d (%s likes, %s replies)",
		orNA(schema.FormatDate(v.PublishDate)), f.count(v.Views), formatDuration(v),
		a.Comments.Count, f.count(a.Comments.Likes), f.count(a.Comments.Replies))); err != nil {
		return err
	}

	// 1. Deviation from the 12-month median
	if a.Deviation != nil {
		rows := make([][]string, 0, len(schema.HeadlineMetrics))
		for _, key := range schema.HeadlineMetrics {
			rows = append(rows, []string{string(key), f.float(v.Metric(key)), formatDeviation(a.Deviation.Values[key], 1, cfg.UseColors)})
		}
		if err := renderTable(w, []string{"Metric", "Value", "vs 12mo Median"}, rows); err != nil {
			return err
		}
	}

	// 2. Audience
	total := 0.0
	for _, s := range a.Audience {
		total += s.Views
	}
	audience := make([][]string, 0, len(a.Audience))
	for _, s := range a.Audience {
		audience = append(audience, []string{s.Subscribed, string(s.Audience), f.count(s.Views), schema.FormatPercent(s.Views/total, 1)})
	}
	if err := renderTable(w, []string{"Subscribed", "Audience", "Views", "Share"}, audience); err != nil {
		return err
	}

	// 3. First days compared with the population
	rows := comparisonRows(a.Comparison)
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{strconv.Itoa(r.day)}
		if r.point != nil {
			row = append(row, f.count(r.point.Views), f.count(r.point.Cumulative))
		} else {
			row = append(row, notAvailable, notAvailable)
		}
		if r.band != nil {
			row = append(row, f.count(r.band.CumP20), f.count(r.band.CumMedian), f.count(r.band.CumP80))
		} else {
			row = append(row, notAvailable, notAvailable, notAvailable)
		}
		table = append(table, row)
	}
	if err := renderTable(w, []string{"Day", "Views", "Cumulative", "Cum P20", "Cum Median", "Cum P80"}, table); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Video analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes the bands and the video trace, one row per day.
func writeComparisonCSV(w io.Writer, c schema.ViewComparison, f formatter) error {
	header := []string{
		"day",
		"samples",
		"mean",
		"median",
		"p80",
		"p20",
		"cum_median",
		"cum_p80",
		"cum_p20",
		"video_views",
		"video_cumulative",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range comparisonRows(c) {
			band := schema.PercentileBand{Mean: math.NaN(), Median: math.NaN(), P80: math.NaN(), P20: math.NaN(), CumMedian: math.NaN(), CumP80: math.NaN(), CumP20: math.NaN()}
			if r.band != nil {
				band = *r.band
			}
			point := schema.TracePoint{Views: math.NaN(), Cumulative: math.NaN()}
			if r.point != nil {
				point = *r.point
			}
			rec := []string{
				strconv.Itoa(r.day),
				strconv.Itoa(band.Samples),
				f.raw(band.Mean),
				f.raw(band.Median),
				f.raw(band.P80),
				f.raw(band.P20),
				f.raw(band.CumMedian),
				f.raw(band.CumP80),
				f.raw(band.CumP20),
				f.raw(point.Views),
				f.raw(point.Cumulative),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
