package parquet

import (
	"github.com/huangsam/ytdash/schema"
)

// Deviation is one (video, metric) cell of the deviation table in long format.
type Deviation struct {
	VideoID     string   `parquet:"video_id,snappy"`
	Title       string   `parquet:"title,snappy"`
	PublishDate *string  `parquet:"publish_date,optional,snappy"`
	Metric      string   `parquet:"metric,snappy,dict"`
	Deviation   *float64 `parquet:"deviation,optional,snappy"`
}

// Median holds the trailing medians of one metric.
type Median struct {
	Metric   string   `parquet:"metric,snappy"`
	Median6  *float64 `parquet:"median_6mo,optional,snappy"`
	Median12 *float64 `parquet:"median_12mo,optional,snappy"`
	Delta    *float64 `parquet:"delta,optional,snappy"`
}

// Band is one day of the population percentile bands.
type Band struct {
	Day       int32    `parquet:"day,snappy"`
	Samples   int32    `parquet:"samples,snappy"`
	Mean      *float64 `parquet:"mean,optional,snappy"`
	Median    *float64 `parquet:"median,optional,snappy"`
	P80       *float64 `parquet:"p80,optional,snappy"`
	P20       *float64 `parquet:"p20,optional,snappy"`
	CumMedian *float64 `parquet:"cum_median,optional,snappy"`
	CumP80    *float64 `parquet:"cum_p80,optional,snappy"`
	CumP20    *float64 `parquet:"cum_p20,optional,snappy"`
}

// TracePoint is one day of the selected video's trajectory.
type TracePoint struct {
	VideoID    string   `parquet:"video_id,snappy,dict"`
	Day        int32    `parquet:"day,snappy"`
	Views      *float64 `parquet:"views,optional,snappy"`
	Cumulative *float64 `parquet:"cumulative,optional,snappy"`
}

// Video is one entry of the video list.
type Video struct {
	VideoID         string   `parquet:"video_id,snappy"`
	Title           string   `parquet:"title,snappy"`
	PublishDate     *string  `parquet:"publish_date,optional,snappy"`
	Views           *float64 `parquet:"views,optional,snappy"`
	EngagementRatio *float64 `parquet:"engagement_ratio,optional,snappy"`
	AvgDurationSec  *float64 `parquet:"avg_duration_sec,optional,snappy"`
}

// ConvertDeviations flattens the deviation table, one row per numeric metric.
func ConvertDeviations(rows []schema.DeviationRow) []Deviation {
	result := make([]Deviation, 0, len(rows)*len(schema.NumericMetrics))
	for _, r := range rows {
		date := optionalDate(r.PublishDate)
		for _, key := range schema.NumericMetrics {
			result = append(result, Deviation{
				VideoID:     r.VideoID,
				Title:       r.Title,
				PublishDate: date,
				Metric:      string(key),
				Deviation:   schema.FiniteOrNil(r.Values[key]),
			})
		}
	}
	return result
}

// ConvertMedians converts the benchmark medians.
func ConvertMedians(medians []schema.MetricMedian) []Median {
	result := make([]Median, len(medians))
	for i, m := range medians {
		result[i] = Median{
			Metric:   string(m.Key),
			Median6:  schema.FiniteOrNil(m.Median6),
			Median12: schema.FiniteOrNil(m.Median12),
			Delta:    schema.FiniteOrNil(m.Delta),
		}
	}
	return result
}

// ConvertBands converts the percentile bands.
func ConvertBands(bands []schema.PercentileBand) []Band {
	result := make([]Band, len(bands))
	for i, b := range bands {
		result[i] = Band{
			Day:       int32(b.Day),
			Samples:   int32(b.Samples),
			Mean:      schema.FiniteOrNil(b.Mean),
			Median:    schema.FiniteOrNil(b.Median),
			P80:       schema.FiniteOrNil(b.P80),
			P20:       schema.FiniteOrNil(b.P20),
			CumMedian: schema.FiniteOrNil(b.CumMedian),
			CumP80:    schema.FiniteOrNil(b.CumP80),
			CumP20:    schema.FiniteOrNil(b.CumP20),
		}
	}
	return result
}

// ConvertTrace converts the trace of one video.
func ConvertTrace(trace schema.VideoTrace) []TracePoint {
	result := make([]TracePoint, len(trace.Points))
	for i, p := range trace.Points {
		result[i] = TracePoint{
			VideoID:    trace.VideoID,
			Day:        int32(p.Day),
			Views:      schema.FiniteOrNil(p.Views),
			Cumulative: schema.FiniteOrNil(p.Cumulative),
		}
	}
	return result
}

// ConvertVideos converts the video list.
func ConvertVideos(videos []schema.VideoRecord) []Video {
	result := make([]Video, len(videos))
	for i, v := range videos {
		result[i] = Video{
			VideoID:         v.ID,
			Title:           v.Title,
			PublishDate:     optionalDate(v.PublishDate),
			Views:           schema.FiniteOrNil(v.Views),
			EngagementRatio: schema.FiniteOrNil(v.EngagementRatio),
			AvgDurationSec:  schema.FiniteOrNil(v.Metric(schema.MetricAvgDurationSec)),
		}
	}
	return result
}

// WriteAggregateParquet writes X.deviations.parquet and X.medians.parquet.
func WriteAggregateParquet(result schema.BenchmarkResult, base string) ([]string, error) {
	files := []string{base + ".deviations.parquet", base + ".medians.parquet"}
	if err := writeParquet(ConvertDeviations(result.Deviations), files[0]); err != nil {
		return nil, err
	}
	if err := writeParquet(ConvertMedians(result.Medians), files[1]); err != nil {
		return nil, err
	}
	return files, nil
}

// WriteVideoParquet writes X.bands.parquet and X.trace.parquet.
func WriteVideoParquet(comparison schema.ViewComparison, base string) ([]string, error) {
	files := []string{base + ".bands.parquet", base + ".trace.parquet"}
	if err := writeParquet(ConvertBands(comparison.Bands), files[0]); err != nil {
		return nil, err
	}
	if err := writeParquet(ConvertTrace(comparison.Video), files[1]); err != nil {
		return nil, err
	}
	return files, nil
}

// WriteVideosParquet writes X.videos.parquet.
func WriteVideosParquet(videos []schema.VideoRecord, base string) ([]string, error) {
	file := base + ".videos.parquet"
	if err := writeParquet(ConvertVideos(videos), file); err != nil {
		return nil, err
	}
	return []string{file}, nil
}
