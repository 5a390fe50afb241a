package web

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
)

var templateFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// cell is one styled table cell.
type cell struct {
	Text  string
	Class string // "pos", "neg" or empty
}

type tileView struct {
	Metric   string
	Value    string
	Median12 string
	Delta    cell
}

type deviationRowView struct {
	ID          string
	Title       string
	PublishDate string
	Cells       []cell
}

type aggregatePage struct {
	Channel string
	Window  string
	Rows6   int
	Rows12  int
	Tiles   []tileView
	Metrics []string
	Rows    []deviationRowView
}

type videoRowView struct {
	ID          string
	Title       string
	PublishDate string
	Views       string
	Engagement  string
	Duration    string
}

type videosPage struct {
	Channel string
	Videos  []videoRowView
}

type metricRowView struct {
	Metric    string
	Value     string
	Deviation cell
}

type audienceRowView struct {
	Subscribed string
	Audience   string
	Views      string
}

type videoPage struct {
	Video     videoRowView
	Comments  schema.CommentStats
	Deviation []metricRowView
	Audience  []audienceRowView
	Format    string
}

// signClass maps a deviation to its CSS class. NaN stays unstyled.
func signClass(v float64) string {
	sign, ok := contract.ClassifySign(v)
	if !ok {
		return ""
	}
	switch sign {
	case contract.SignNegative:
		return "neg"
	case contract.SignPositive:
		return "pos"
	default:
		return ""
	}
}

func deviationCell(v float64) cell {
	return cell{Text: schema.FormatPercent(v, 1), Class: signClass(v)}
}

func formatNumber(v float64, decimals int) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

func channelName(cfg *contract.Config) string {
	name := filepath.Base(cfg.DataDir)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "current"
	}
	return name
}

func newAggregatePage(cfg *contract.Config, result schema.BenchmarkResult) aggregatePage {
	page := aggregatePage{
		Channel: channelName(cfg),
		Window:  fmt.Sprintf("%s → %s", schema.FormatDate(result.Cutoff12), schema.FormatDate(result.MaxPublish)),
		Rows6:   result.Rows6,
		Rows12:  result.Rows12,
	}
	for _, key := range schema.HeadlineMetrics {
		page.Metrics = append(page.Metrics, string(key))
		m, ok := result.Median(key)
		if !ok {
			continue
		}
		page.Tiles = append(page.Tiles, tileView{
			Metric:   string(key),
			Value:    formatNumber(schema.RoundTo(m.Median6, 1), 1),
			Median12: formatNumber(m.Median12, cfg.Precision),
			Delta:    cell{Text: schema.FormatPercent(m.Delta, 2), Class: signClass(m.Delta)},
		})
	}
	for _, d := range result.Deviations {
		row := deviationRowView{ID: d.VideoID, Title: d.Title, PublishDate: schema.FormatDate(d.PublishDate)}
		for _, key := range schema.HeadlineMetrics {
			row.Cells = append(row.Cells, deviationCell(d.Values[key]))
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}

func newVideoRow(v schema.VideoRecord) videoRowView {
	duration := "n/a"
	if v.AvgViewDuration != nil {
		s := v.AvgDurationSec
		duration = fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	date := schema.FormatDate(v.PublishDate)
	if date == "" {
		date = "n/a"
	}
	return videoRowView{
		ID:          v.ID,
		Title:       v.Title,
		PublishDate: date,
		Views:       formatNumber(v.Views, 0),
		Engagement:  schema.FormatPercent(v.EngagementRatio, 2),
		Duration:    duration,
	}
}

func newVideosPage(cfg *contract.Config, videos []schema.VideoRecord) videosPage {
	page := videosPage{Channel: channelName(cfg), Videos: make([]videoRowView, len(videos))}
	for i, v := range videos {
		page.Videos[i] = newVideoRow(v)
	}
	return page
}

func newVideoPage(cfg *contract.Config, a schema.VideoAnalysis) videoPage {
	page := videoPage{
		Video:    newVideoRow(a.Video),
		Comments: a.Comments,
		Format:   string(cfg.ChartFormat),
	}
	if page.Format == "" {
		page.Format = string(schema.SVGChart)
	}
	if a.Deviation != nil {
		for _, key := range schema.HeadlineMetrics {
			page.Deviation = append(page.Deviation, metricRowView{
				Metric:    string(key),
				Value:     formatNumber(a.Video.Metric(key), cfg.Precision),
				Deviation: deviationCell(a.Deviation.Values[key]),
			})
		}
	}
	for _, s := range a.Audience {
		page.Audience = append(page.Audience, audienceRowView{
			Subscribed: s.Subscribed,
			Audience:   string(s.Audience),
			Views:      formatNumber(s.Views, 0),
		})
	}
	return page
}
