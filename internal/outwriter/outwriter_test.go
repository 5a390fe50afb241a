package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleVideos() []schema.VideoRecord {
	short := 90 * time.Second
	return []schema.VideoRecord{
		{
			ID:              "a",
			Title:           "Intro to pandas",
			PublishDate:     date(2023, time.December, 15),
			Views:           1000,
			EngagementRatio: 0.1,
			AvgViewDuration: &short,
			AvgDurationSec:  90,
		},
		{
			ID:                "b",
			Title:             "Data science careers",
			PublishDate:       date(2023, time.June, 15),
			Views:             4000,
			EngagementRatio:   math.NaN(),
			ViewsPerSubGained: math.Inf(1),
		},
	}
}

func sampleBenchmark() schema.BenchmarkResult {
	result := schema.BenchmarkResult{
		MaxPublish: date(2023, time.December, 15),
		Cutoff6:    date(2023, time.June, 15),
		Cutoff12:   date(2022, time.December, 15),
		Rows6:      2,
		Rows12:     2,
	}
	for _, key := range schema.NumericMetrics {
		result.Medians = append(result.Medians, schema.MetricMedian{Key: key, Median6: 2500.04, Median12: 2000, Delta: 0.25})
	}
	for i, v := range sampleVideos() {
		values := make(map[schema.MetricKey]float64, len(schema.NumericMetrics))
		for _, key := range schema.NumericMetrics {
			values[key] = float64(i)
		}
		values[schema.MetricEngagementRatio] = math.NaN()
		result.Deviations = append(result.Deviations, schema.DeviationRow{
			VideoID: v.ID, Title: v.Title, PublishDate: v.PublishDate, Values: values,
		})
	}
	return result
}

func sampleAnalysis() schema.VideoAnalysis {
	video := sampleVideos()[0]
	bench := sampleBenchmark()
	return schema.VideoAnalysis{
		Video:     video,
		Deviation: &bench.Deviations[0],
		Audience: []schema.AudienceSlice{
			{Subscribed: schema.SubscribedFalse, Audience: schema.AudienceUSA, Views: 300},
			{Subscribed: schema.SubscribedTrue, Audience: schema.AudienceIndia, Views: 100},
		},
		Comparison: schema.ViewComparison{
			Bands: []schema.PercentileBand{
				{Day: 0, Samples: 2, Mean: 300, Median: 300, P80: 460, P20: 140, CumMedian: 300, CumP80: 460, CumP20: 140},
				{Day: 1, Samples: 1, Mean: 60, Median: 60, P80: 60, P20: 60, CumMedian: 360, CumP80: 520, CumP20: 200},
			},
			Video: schema.VideoTrace{
				VideoID: video.ID,
				Title:   video.Title,
				Points: []schema.TracePoint{
					{Day: 0, Views: 100, Cumulative: 100},
					{Day: 2, Views: math.NaN(), Cumulative: math.NaN()},
				},
			},
		},
		Comments: schema.CommentStats{Count: 2, Likes: 7, Replies: 1},
	}
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewBufferString(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteAggregateTable(t *testing.T) {
	cfg := &contract.Config{DataDir: "/exports/ken-jee", Precision: 1, Width: 200, AnalysisBackend: schema.NoneBackend}
	var buf bytes.Buffer
	err := writeAggregateTable(&buf, sampleBenchmark(), cfg, newFormatter(cfg.Precision), 100*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Channel: ken-jee (6-month videos: 2, 12-month videos: 2)")
	assert.Contains(t, out, "Window: 2022-12-15 → 2023-12-15")
	assert.Contains(t, out, "2500.0")
	assert.Contains(t, out, "▲ 25.00%")
	assert.Contains(t, out, "Intro to pandas")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "Showing 2 videos against the 12-month median")
	assert.Contains(t, out, "Aggregate completed in 100ms. Run history backend: none")
}

func TestWriteAggregateCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAggregateCSV(&buf, sampleBenchmark(), newFormatter(2)))

	records := readCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Len(t, records[0], 3+len(schema.NumericMetrics))
	assert.Equal(t, []string{"video_id", "title", "publish_date"}, records[0][:3])
	assert.Equal(t, []string{"b", "Data science careers", "2023-06-15"}, records[2][:3])

	col := 3 + len(schema.NumericMetrics) - 2 // Engagement_ratio
	assert.Equal(t, string(schema.MetricEngagementRatio), records[0][col])
	assert.Equal(t, "", records[1][col])
	assert.Equal(t, "1", records[2][3])
}

func TestComparisonRows(t *testing.T) {
	rows := comparisonRows(sampleAnalysis().Comparison)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{rows[0].day, rows[1].day, rows[2].day})
	assert.NotNil(t, rows[0].band)
	assert.NotNil(t, rows[0].point)
	assert.Nil(t, rows[1].point)
	assert.Nil(t, rows[2].band)
}

func TestWriteVideoTables(t *testing.T) {
	cfg := &contract.Config{Precision: 1, UseEmojis: true}
	var buf bytes.Buffer
	require.NoError(t, writeVideoTables(&buf, sampleAnalysis(), cfg, newFormatter(cfg.Precision), 100*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "🎬 Video: Intro to pandas (a)")
	assert.Contains(t, out, "Published: 2023-12-15 | Views: 1000 | Avg duration: 0:01:30 | Comments: 2 (7 likes, 1 replies)")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "India")
	assert.Contains(t, out, "Video analysis completed in 100ms")
}

func TestWriteVideoTablesWithoutDeviation(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Deviation = nil
	analysis.Audience = nil
	var buf bytes.Buffer
	require.NoError(t, writeVideoTables(&buf, analysis, &contract.Config{}, newFormatter(1), time.Second))
	assert.NotContains(t, buf.String(), "vs 12mo Median")
}

func TestWriteComparisonCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeComparisonCSV(&buf, sampleAnalysis().Comparison, newFormatter(1)))

	records := readCSV(t, buf.String())
	require.Len(t, records, 4)
	assert.Equal(t, "video_cumulative", records[0][10])
	assert.Equal(t, []string{"0", "2", "300", "300", "460", "140", "300", "460", "140", "100", "100"}, records[1])
	assert.Equal(t, "", records[2][9])
	assert.Equal(t, []string{"2", "0", "", "", "", "", "", "", "", "", ""}, records[3])
}

func TestWriteVideosTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120}
	var buf bytes.Buffer
	require.NoError(t, writeVideosTable(&buf, sampleVideos(), cfg, newFormatter(1), 100*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Intro to pandas")
	assert.Contains(t, out, "10.0%")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "Listed 2 videos in 100ms")
}

func TestWriteVideosCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVideosCSV(&buf, sampleVideos(), newFormatter(1)))

	records := readCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "Intro to pandas", "2023-12-15", "1000", "0.1", "90", "0"}, records[1])
	assert.Equal(t, []string{"b", "Data science careers", "2023-06-15", "4000", "", "", "+Inf"}, records[2])
}

func TestWriteAggregateJSONFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "aggregate.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: out, Precision: 1}
	require.NoError(t, WriteAggregate(sampleBenchmark(), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded schema.AggregateOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2023-12-15", decoded.MaxPublish)
	assert.Len(t, decoded.Tiles, len(schema.HeadlineMetrics))
	require.Len(t, decoded.Deviations, 2)
	assert.True(t, math.IsNaN(float64(decoded.Deviations[0].Values[schema.MetricEngagementRatio])))
}

func TestWriteVideoJSONFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "video.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: out}
	require.NoError(t, WriteVideo(sampleAnalysis(), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded schema.VideoAnalysisOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a", decoded.Video.ID)
	assert.Len(t, decoded.Bands, 2)
	assert.Len(t, decoded.Trace, 2)
	assert.Equal(t, 2, decoded.Comments.Count)
}

func TestWriteVideosParquetFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "channel")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: base}
	require.NoError(t, WriteVideos(sampleVideos(), cfg, time.Second))
	assert.FileExists(t, base+".videos.parquet")
}

func TestWriteVideoCSVFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "video.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: out}
	require.NoError(t, WriteVideo(sampleAnalysis(), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, string(data)), 4)
}

func TestWriteVideosTableFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "videos.txt")
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: out, Precision: 1}
	require.NoError(t, WriteVideos(sampleVideos(), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Listed 2 videos in 1s")
}
