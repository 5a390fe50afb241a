// Package algo has the statistics behind benchmarks and view comparisons.
package algo

import (
	"math"
	"slices"
	"time"
)

// finiteSorted returns a sorted copy of values without NaN entries.
func finiteSorted(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Median returns the median of values, skipping NaN. Infinities take part.
// An input without any non-NaN value yields NaN.
func Median(values []float64) float64 {
	sorted := finiteSorted(values)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean of values, skipping NaN.
func Mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Percentile returns the p-th percentile (0..100) of values, skipping NaN.
// It interpolates linearly between the two closest ranks, at rank
// p/100*(n-1) of the sorted values.
func Percentile(values []float64, p float64) float64 {
	sorted := finiteSorted(values)
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = math.Max(0, math.Min(100, p))
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := min(lo+1, n-1)
	frac := pos - float64(lo)
	// Equal neighbours would turn inf-inf into NaN.
	if frac == 0 || sorted[lo] == sorted[hi] {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// CumSum returns the running sum of values. A NaN entry stays NaN in the
// output and does not interrupt the running total.
func CumSum(values []float64) []float64 {
	out := make([]float64, len(values))
	total := 0.0
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		total += v
		out[i] = total
	}
	return out
}

// SubtractMonths moves t back by the given number of calendar months. When
// the target month is shorter, the day is clamped to its last day, so
// Mar 31 minus one month is Feb 28 (or 29). The clock time is kept.
func SubtractMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	idx := int(month) - 1 - months
	year += floorDiv(idx, 12)
	target := time.Month(idx-floorDiv(idx, 12)*12 + 1)
	if last := daysIn(year, target, t.Location()); day > last {
		day = last
	}
	return time.Date(year, target, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// FloorDays returns the whole number of days in d, rounding toward negative infinity.
func FloorDays(d time.Duration) int {
	const day = 24 * time.Hour
	q := d / day
	if d%day < 0 {
		q--
	}
	return int(q)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
