package algo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "odd count", values: []float64{3, 1, 2}, expected: 2},
		{name: "even count", values: []float64{4, 1, 3, 2}, expected: 2.5},
		{name: "skips NaN", values: []float64{math.NaN(), 10, 20, math.NaN()}, expected: 15},
		{name: "single value", values: []float64{7}, expected: 7},
		{name: "infinity takes part", values: []float64{1, 2, math.Inf(1)}, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Median(tt.values), 1e-9)
		})
	}
}

func TestMedian_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
	assert.True(t, math.IsNaN(Median([]float64{math.NaN()})))
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 2.0, Mean([]float64{1, math.NaN(), 3}), 1e-9)
	assert.True(t, math.IsNaN(Mean(nil)))
}

// TestPercentile checks linear interpolation between the closest ranks.
func TestPercentile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{name: "p80 of five", values: []float64{5, 3, 1, 4, 2}, p: 80, expected: 4.2},
		{name: "p20 of five", values: []float64{1, 2, 3, 4, 5}, p: 20, expected: 1.8},
		{name: "two values", values: []float64{10, 20}, p: 80, expected: 18},
		{name: "p50 equals median", values: []float64{1, 2, 3, 4}, p: 50, expected: 2.5},
		{name: "p0 is minimum", values: []float64{4, 2, 9}, p: 0, expected: 2},
		{name: "p100 is maximum", values: []float64{4, 2, 9}, p: 100, expected: 9},
		{name: "single value", values: []float64{42}, p: 80, expected: 42},
		{name: "skips NaN", values: []float64{math.NaN(), 1, 2, 3, 4, 5}, p: 80, expected: 4.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestPercentile_EqualInfinities(t *testing.T) {
	inf := math.Inf(1)
	assert.Equal(t, inf, Percentile([]float64{1, inf, inf}, 80))
}

func TestPercentile_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestCumSum(t *testing.T) {
	assert.Equal(t, []float64{1, 3, 6}, CumSum([]float64{1, 2, 3}))
	assert.Empty(t, CumSum(nil))

	got := CumSum([]float64{1, math.NaN(), 2})
	assert.Equal(t, 1.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 3.0, got[2])
}

func TestSubtractMonths(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "same day previous year",
			in:       time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2022, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "crosses year boundary",
			in:       time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			months:   6,
			expected: time.Date(2022, 9, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamps to end of february",
			in:       time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamps to leap day",
			in:       time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC),
			months:   6,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamps to thirty days",
			in:       time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			months:   6,
			expected: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "keeps clock time",
			in:       time.Date(2023, 5, 20, 13, 45, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2022, 5, 20, 13, 45, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubtractMonths(tt.in, tt.months))
		})
	}
}

func TestFloorDays(t *testing.T) {
	assert.Equal(t, 0, FloorDays(0))
	assert.Equal(t, 1, FloorDays(36*time.Hour))
	assert.Equal(t, 30, FloorDays(30*24*time.Hour))
	assert.Equal(t, -1, FloorDays(-time.Hour))
	assert.Equal(t, -2, FloorDays(-25*time.Hour))
}
