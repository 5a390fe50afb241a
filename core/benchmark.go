package core

import (
	"errors"
	"math"
	"time"

	"github.com/huangsam/ytdash/core/algo"
	"github.com/huangsam/ytdash/schema"
)

// ErrNoVideos is returned when there is nothing to benchmark.
var ErrNoVideos = errors.New("no videos to analyze")

// ComputeBenchmark compares every video against the medians of the videos
// published in the trailing 6 and 12 months. videos must carry derived features.
func ComputeBenchmark(videos []schema.VideoRecord) (schema.BenchmarkResult, error) {
	if len(videos) == 0 {
		return schema.BenchmarkResult{}, ErrNoVideos
	}

	var result schema.BenchmarkResult
	var window6, window12 []schema.VideoRecord
	if maxPublish, ok := latestPublish(videos); ok {
		cutoff6 := algo.SubtractMonths(maxPublish, schema.ShortWindowMonths)
		cutoff12 := algo.SubtractMonths(maxPublish, schema.LongWindowMonths)
		result.MaxPublish, result.Cutoff6, result.Cutoff12 = &maxPublish, &cutoff6, &cutoff12
		window6 = publishedSince(videos, cutoff6)
		window12 = publishedSince(videos, cutoff12)
	}
	result.Rows6, result.Rows12 = len(window6), len(window12)

	median12 := make(map[schema.MetricKey]float64, len(schema.NumericMetrics))
	result.Medians = make([]schema.MetricMedian, len(schema.NumericMetrics))
	for i, key := range schema.NumericMetrics {
		m6 := metricMedian(window6, key)
		m12 := metricMedian(window12, key)
		median12[key] = m12
		result.Medians[i] = schema.MetricMedian{Key: key, Median6: m6, Median12: m12, Delta: (m6 - m12) / m12}
	}

	result.Deviations = make([]schema.DeviationRow, len(videos))
	for i, v := range videos {
		result.Deviations[i] = deviationOf(v, median12)
	}
	return result, nil
}

// deviationOf computes (value - median) / median for every numeric metric.
func deviationOf(v schema.VideoRecord, medians map[schema.MetricKey]float64) schema.DeviationRow {
	values := make(map[schema.MetricKey]float64, len(schema.NumericMetrics))
	for _, key := range schema.NumericMetrics {
		m := medians[key]
		values[key] = (v.Metric(key) - m) / m
	}
	return schema.DeviationRow{VideoID: v.ID, Title: v.Title, PublishDate: v.PublishDate, Values: values}
}

// latestPublish returns the max publish time, ignoring videos without one.
func latestPublish(videos []schema.VideoRecord) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, v := range videos {
		if v.PublishTime == nil {
			continue
		}
		if !found || v.PublishTime.After(latest) {
			latest = *v.PublishTime
			found = true
		}
	}
	return latest, found
}

// publishedSince keeps videos published at or after cutoff.
func publishedSince(videos []schema.VideoRecord, cutoff time.Time) []schema.VideoRecord {
	var out []schema.VideoRecord
	for _, v := range videos {
		if v.PublishTime != nil && !v.PublishTime.Before(cutoff) {
			out = append(out, v)
		}
	}
	return out
}

func metricMedian(videos []schema.VideoRecord, key schema.MetricKey) float64 {
	if len(videos) == 0 {
		return math.NaN()
	}
	values := make([]float64, len(videos))
	for i, v := range videos {
		values[i] = v.Metric(key)
	}
	return algo.Median(values)
}
