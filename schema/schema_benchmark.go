package schema

import "time"

// MetricMedian holds the trailing medians of one numeric metric.
type MetricMedian struct {
	Key      MetricKey
	Median6  float64
	Median12 float64
	Delta    float64 // (Median6 - Median12) / Median12
}

// DeviationRow holds the relative deviation of one video from the 12-month median.
type DeviationRow struct {
	VideoID     string
	Title       string
	PublishDate *time.Time
	Values      map[MetricKey]float64
}

// BenchmarkResult is the output of the benchmark engine.
type BenchmarkResult struct {
	MaxPublish *time.Time // nil when no video has a publish time
	Cutoff6    *time.Time
	Cutoff12   *time.Time
	Rows6      int // videos inside the 6-month window
	Rows12     int // videos inside the 12-month window
	Medians    []MetricMedian
	Deviations []DeviationRow
}

// Median returns the medians of a metric, if computed.
func (r BenchmarkResult) Median(key MetricKey) (MetricMedian, bool) {
	for _, m := range r.Medians {
		if m.Key == key {
			return m, true
		}
	}
	return MetricMedian{}, false
}
