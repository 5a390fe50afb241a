// Package chart renders the video view charts with github.com/wcharczuk/go-chart/v2.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/huangsam/ytdash/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data to chart")

// Chart titles and axis names.
const (
	ViewsTitle    = "View comparison first 30 days"
	ViewsXAxis    = "Days Since Published"
	ViewsYAxis    = "Cumulative views"
	AudienceTitle = "Views by subscription status (blue USA, orange India, gray Other)"
)

const (
	defaultWidth  = 960
	defaultHeight = 480
)

var (
	colorPurple    = drawing.ColorFromHex("800080")
	colorRoyalBlue = drawing.ColorFromHex("4169E1")
	colorFirebrick = drawing.ColorFromHex("B22222")
	colorOrange    = drawing.ColorFromHex("FFA500")
	colorGray      = drawing.ColorFromHex("A9A9A9")
)

var audienceColors = map[schema.AudienceBucket]drawing.Color{
	schema.AudienceUSA:   colorRoyalBlue,
	schema.AudienceIndia: colorOrange,
	schema.AudienceOther: colorGray,
}

// percentileBand describes one dashed cumulative band line of the views chart.
type percentileBand struct {
	name  string
	color drawing.Color
	pick  func(schema.PercentileBand) float64
}

// viewBands lists the band lines in legend order.
var viewBands = []percentileBand{
	{"80th percentile", colorRoyalBlue, func(b schema.PercentileBand) float64 { return b.CumP80 }},
	{"50th percentile", chart.ColorBlack, func(b schema.PercentileBand) float64 { return b.CumMedian }},
	{"20th percentile", colorPurple, func(b schema.PercentileBand) float64 { return b.CumP20 }},
}

// rendererFor maps a chart format to its go-chart renderer.
func rendererFor(format schema.ChartFormat) (chart.RendererProvider, error) {
	switch format {
	case schema.PNGChart, "":
		return chart.PNG, nil
	case schema.SVGChart:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("unsupported chart format %q", format)
	}
}

// ContentType returns the MIME type of a chart format.
func ContentType(format schema.ChartFormat) string {
	if format == schema.SVGChart {
		return "image/svg+xml"
	}
	return "image/png"
}

// RenderViews draws the cumulative percentile bands and the selected video's
// cumulative views over the first days since publish.
func RenderViews(w io.Writer, comparison schema.ViewComparison, format schema.ChartFormat) error {
	rp, err := rendererFor(format)
	if err != nil {
		return err
	}

	var series []chart.Series
	maxY := 0.0
	add := func(name string, xs, ys []float64, style chart.Style) {
		if len(xs) == 0 {
			return
		}
		for _, y := range ys {
			maxY = math.Max(maxY, y)
		}
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: style})
	}

	dashed := []float64{5.0, 5.0}
	for _, band := range viewBands {
		xs, ys := bandSeries(comparison.Bands, band.pick)
		add(band.name, xs, ys, chart.Style{StrokeColor: band.color, StrokeWidth: 2, StrokeDashArray: dashed})
	}
	xs, ys := traceSeries(comparison.Video.Points)
	add("Current Video", xs, ys, chart.Style{StrokeColor: colorFirebrick, StrokeWidth: 8})

	if len(series) == 0 {
		return ErrNoData
	}
	if maxY <= 0 {
		maxY = 1
	}

	ch := chart.Chart{
		Title:  ViewsTitle,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  ViewsXAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: schema.MaxTrackedDay},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  ViewsYAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(rp, w)
}

// bandSeries extracts one cumulative band, dropping non-finite points.
func bandSeries(bands []schema.PercentileBand, pick func(schema.PercentileBand) float64) (xs, ys []float64) {
	for _, b := range bands {
		v := pick(b)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, float64(b.Day))
		ys = append(ys, v)
	}
	return xs, ys
}

// traceSeries extracts the cumulative views of the video, dropping NaN days.
func traceSeries(points []schema.TracePoint) (xs, ys []float64) {
	for _, p := range points {
		if math.IsNaN(p.Cumulative) || math.IsInf(p.Cumulative, 0) {
			continue
		}
		xs = append(xs, float64(p.Day))
		ys = append(ys, p.Cumulative)
	}
	return xs, ys
}

// RenderAudience draws one horizontal bar per subscription status, stacked by
// audience bucket.
func RenderAudience(w io.Writer, slices []schema.AudienceSlice, format schema.ChartFormat) error {
	rp, err := rendererFor(format)
	if err != nil {
		return err
	}

	var bars []chart.StackedBar
	for _, status := range []string{schema.SubscribedFalse, schema.SubscribedTrue, schema.SubscribedUnknown} {
		bar := chart.StackedBar{Name: status}
		for _, s := range slices {
			if s.Subscribed != status || !(s.Views > 0) || math.IsInf(s.Views, 0) {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Label: string(s.Audience),
				Value: s.Views,
				Style: chart.Style{FillColor: audienceColors[s.Audience], StrokeColor: audienceColors[s.Audience]},
			})
		}
		if len(bar.Values) > 0 {
			bars = append(bars, bar)
		}
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	sbc := chart.StackedBarChart{
		Title:        AudienceTitle,
		Width:        defaultWidth,
		Height:       defaultHeight,
		IsHorizontal: true,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
	return sbc.Render(rp, w)
}

// WriteVideoCharts renders both charts of a video into dir as
// <id>.audience.<format> and <id>.views.<format>. Charts without data are
// skipped; the paths written are returned.
func WriteVideoCharts(dir string, format schema.ChartFormat, analysis schema.VideoAnalysis) ([]string, error) {
	if format == "" {
		format = schema.PNGChart
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	renders := []struct {
		kind   string
		render func(io.Writer) error
	}{
		{"audience", func(w io.Writer) error { return RenderAudience(w, analysis.Audience, format) }},
		{"views", func(w io.Writer) error { return RenderViews(w, analysis.Comparison, format) }},
	}

	var written []string
	for _, r := range renders {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.%s", analysis.Video.ID, r.kind, format))
		ok, err := writeChart(path, r.render)
		if err != nil {
			return written, fmt.Errorf("failed to render %s chart: %w", r.kind, err)
		}
		if ok {
			written = append(written, path)
		}
	}
	return written, nil
}

// writeChart renders into path. A chart without data leaves no file behind.
func writeChart(path string, render func(io.Writer) error) (bool, error) {
	file, err := os.Create(path)
	if err != nil {
		return false, err
	}
	renderErr := render(file)
	closeErr := file.Close()
	if errors.Is(renderErr, ErrNoData) {
		_ = os.Remove(path)
		return false, nil
	}
	if renderErr != nil {
		_ = os.Remove(path)
		return false, renderErr
	}
	return true, closeErr
}
