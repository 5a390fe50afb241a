package schema

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DateLayout is how publish dates are rendered in every output.
const DateLayout = "2006-01-02"

// Number is a float64 that survives JSON encoding when it is not finite.
// NaN encodes as null and infinities as the strings "+Inf" and "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte("null"), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler and accepts what MarshalJSON emits.
func (n *Number) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*n = Number(math.NaN())
		return nil
	case `"+Inf"`:
		*n = Number(math.Inf(1))
		return nil
	case `"-Inf"`:
		*n = Number(math.Inf(-1))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// TileOutput is one headline metric tile.
type TileOutput struct {
	Metric     MetricKey `json:"metric"`
	Value      Number    `json:"value"`
	Median6    Number    `json:"median_6mo"`
	Median12   Number    `json:"median_12mo"`
	Delta      Number    `json:"delta"`
	DeltaLabel string    `json:"delta_label"`
}

// DeviationOutput is one row of the deviation table.
type DeviationOutput struct {
	VideoID     string               `json:"video_id"`
	Title       string               `json:"title"`
	PublishDate string               `json:"publish_date"`
	Values      map[MetricKey]Number `json:"values"`
}

// AggregateOutput is the JSON shape of the aggregate view.
type AggregateOutput struct {
	MaxPublish string            `json:"max_publish"`
	Cutoff6    string            `json:"cutoff_6mo"`
	Cutoff12   string            `json:"cutoff_12mo"`
	Rows6      int               `json:"videos_6mo"`
	Rows12     int               `json:"videos_12mo"`
	Tiles      []TileOutput      `json:"tiles"`
	Deviations []DeviationOutput `json:"deviations"`
}

// VideoSummaryOutput describes one selectable video.
type VideoSummaryOutput struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	PublishDate     string `json:"publish_date"`
	Views           Number `json:"views"`
	EngagementRatio Number `json:"engagement_ratio"`
	AvgDurationSec  Number `json:"avg_duration_sec"`
}

// AudienceSliceOutput is the JSON shape of an AudienceSlice.
type AudienceSliceOutput struct {
	Subscribed string         `json:"subscribed"`
	Audience   AudienceBucket `json:"audience"`
	Views      Number         `json:"views"`
}

// BandOutput is the JSON shape of a PercentileBand.
type BandOutput struct {
	Day       int    `json:"day"`
	Samples   int    `json:"samples"`
	Mean      Number `json:"mean"`
	Median    Number `json:"median"`
	P80       Number `json:"p80"`
	P20       Number `json:"p20"`
	CumMedian Number `json:"cum_median"`
	CumP80    Number `json:"cum_p80"`
	CumP20    Number `json:"cum_p20"`
}

// TracePointOutput is the JSON shape of a TracePoint.
type TracePointOutput struct {
	Day        int    `json:"day"`
	Views      Number `json:"views"`
	Cumulative Number `json:"cumulative"`
}

// VideoAnalysisOutput is the JSON shape of the single video view.
type VideoAnalysisOutput struct {
	Video     VideoSummaryOutput    `json:"video"`
	Deviation map[MetricKey]Number  `json:"deviation,omitempty"`
	Audience  []AudienceSliceOutput `json:"audience"`
	Bands     []BandOutput          `json:"bands"`
	Trace     []TracePointOutput    `json:"trace"`
	Comments  CommentStats          `json:"comments"`
}

// FormatDate renders an optional date, empty when nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatPercent renders a ratio as a percentage with the given decimals.
// Non-finite values have no percentage and render as "n/a".
func FormatPercent(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f%%", decimals, v*100)
}

// RoundTo rounds v half away from zero to the given decimals.
func RoundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// SummarizeVideo builds the list entry of a video.
func SummarizeVideo(v VideoRecord) VideoSummaryOutput {
	return VideoSummaryOutput{
		ID:              v.ID,
		Title:           v.Title,
		PublishDate:     FormatDate(v.PublishDate),
		Views:           Number(v.Views),
		EngagementRatio: Number(v.EngagementRatio),
		AvgDurationSec:  Number(v.Metric(MetricAvgDurationSec)),
	}
}

// SummarizeVideos builds list entries for all videos.
func SummarizeVideos(videos []VideoRecord) []VideoSummaryOutput {
	output := make([]VideoSummaryOutput, len(videos))
	for i, v := range videos {
		output[i] = SummarizeVideo(v)
	}
	return output
}

// EnrichAggregate converts a benchmark result into its JSON shape.
func EnrichAggregate(r BenchmarkResult) AggregateOutput {
	output := AggregateOutput{
		MaxPublish: FormatDate(r.MaxPublish),
		Cutoff6:    FormatDate(r.Cutoff6),
		Cutoff12:   FormatDate(r.Cutoff12),
		Rows6:      r.Rows6,
		Rows12:     r.Rows12,
		Tiles:      make([]TileOutput, 0, len(HeadlineMetrics)),
		Deviations: make([]DeviationOutput, len(r.Deviations)),
	}
	for _, key := range HeadlineMetrics {
		m, ok := r.Median(key)
		if !ok {
			continue
		}
		output.Tiles = append(output.Tiles, TileOutput{
			Metric:     key,
			Value:      Number(RoundTo(m.Median6, 1)),
			Median6:    Number(m.Median6),
			Median12:   Number(m.Median12),
			Delta:      Number(m.Delta),
			DeltaLabel: FormatPercent(m.Delta, 2),
		})
	}
	for i, d := range r.Deviations {
		output.Deviations[i] = DeviationOutput{
			VideoID:     d.VideoID,
			Title:       d.Title,
			PublishDate: FormatDate(d.PublishDate),
			Values:      numberMap(d.Values),
		}
	}
	return output
}

// EnrichVideoAnalysis converts a single video analysis into its JSON shape.
func EnrichVideoAnalysis(a VideoAnalysis) VideoAnalysisOutput {
	output := VideoAnalysisOutput{
		Video:    SummarizeVideo(a.Video),
		Audience: make([]AudienceSliceOutput, len(a.Audience)),
		Bands:    make([]BandOutput, len(a.Comparison.Bands)),
		Trace:    make([]TracePointOutput, len(a.Comparison.Video.Points)),
		Comments: a.Comments,
	}
	if a.Deviation != nil {
		output.Deviation = numberMap(a.Deviation.Values)
	}
	for i, s := range a.Audience {
		output.Audience[i] = AudienceSliceOutput{Subscribed: s.Subscribed, Audience: s.Audience, Views: Number(s.Views)}
	}
	for i, b := range a.Comparison.Bands {
		output.Bands[i] = BandOutput{
			Day:       b.Day,
			Samples:   b.Samples,
			Mean:      Number(b.Mean),
			Median:    Number(b.Median),
			P80:       Number(b.P80),
			P20:       Number(b.P20),
			CumMedian: Number(b.CumMedian),
			CumP80:    Number(b.CumP80),
			CumP20:    Number(b.CumP20),
		}
	}
	for i, p := range a.Comparison.Video.Points {
		output.Trace[i] = TracePointOutput{Day: p.Day, Views: Number(p.Views), Cumulative: Number(p.Cumulative)}
	}
	return output
}

func numberMap(values map[MetricKey]float64) map[MetricKey]Number {
	out := make(map[MetricKey]Number, len(values))
	for k, v := range values {
		out[k] = Number(v)
	}
	return out
}
