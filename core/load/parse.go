package load

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/ytdash/schema"
	"go.uber.org/zap"
)

// Layouts of the date cells in each export.
const (
	PublishTimeLayout = "Jan 2, 2006"
	DailyDateLayout   = "2 Jan 2006"
)

// commentDateLayouts are tried in order for the comments export.
var commentDateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// isBlank reports whether a cell carries no value.
func isBlank(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "NaN", "nan", "NA", "N/A", "<nil>":
		return true
	}
	return false
}

// ParseNumber parses a numeric cell, tolerating thousands separators.
func ParseNumber(raw string) (float64, bool) {
	if isBlank(raw) {
		return math.NaN(), false
	}
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

// ParsePublishTime parses cells such as "Nov 12, 2020".
func ParsePublishTime(raw string) (*time.Time, bool) {
	return parseLayouts(raw, PublishTimeLayout)
}

// ParseDailyDate parses cells such as "12 Nov 2020".
func ParseDailyDate(raw string) (*time.Time, bool) {
	return parseLayouts(raw, DailyDateLayout)
}

func parseLayouts(raw string, layouts ...string) (*time.Time, bool) {
	if isBlank(raw) {
		return nil, false
	}
	s := strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// ParseViewDuration parses an H:MM:SS wall-clock duration. Hours may exceed 23.
func ParseViewDuration(raw string) (*time.Duration, bool) {
	if isBlank(raw) {
		return nil, false
	}
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return nil, false
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		fields[i] = n
	}
	if fields[1] > 59 || fields[2] > 59 {
		return nil, false
	}
	d := time.Duration(fields[0])*time.Hour + time.Duration(fields[1])*time.Minute + time.Duration(fields[2])*time.Second
	return &d, true
}

// ParseSubscribed parses the subscription status column.
func ParseSubscribed(raw string) (*bool, bool) {
	if isBlank(raw) {
		return nil, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	return &b, true
}

// nullTracker counts the cells of one file that were coerced to null.
type nullTracker struct {
	file    string
	order   []string
	counts  map[string]int
	example map[string]string
}

func newNullTracker(file string) *nullTracker {
	return &nullTracker{
		file:    file,
		counts:  make(map[string]int),
		example: make(map[string]string),
	}
}

func (t *nullTracker) note(column, raw string) {
	if _, seen := t.counts[column]; !seen {
		t.order = append(t.order, column)
	}
	t.counts[column]++
	if _, ok := t.example[column]; !ok && !isBlank(raw) {
		t.example[column] = raw
	}
}

func (t *nullTracker) number(column, raw string) float64 {
	v, ok := ParseNumber(raw)
	if !ok {
		t.note(column, raw)
	}
	return v
}

func (t *nullTracker) publishTime(column, raw string) *time.Time {
	v, ok := ParsePublishTime(raw)
	if !ok {
		t.note(column, raw)
	}
	return v
}

func (t *nullTracker) dailyDate(column, raw string) *time.Time {
	v, ok := ParseDailyDate(raw)
	if !ok {
		t.note(column, raw)
	}
	return v
}

func (t *nullTracker) timestamp(column, raw string) *time.Time {
	v, ok := parseLayouts(raw, commentDateLayouts...)
	if !ok {
		t.note(column, raw)
	}
	return v
}

func (t *nullTracker) duration(column, raw string) *time.Duration {
	v, ok := ParseViewDuration(raw)
	if !ok {
		t.note(column, raw)
	}
	return v
}

func (t *nullTracker) subscribed(column, raw string) *bool {
	v, ok := ParseSubscribed(raw)
	if !ok {
		t.note(column, raw)
	}
	return v
}

// flush adds the counts to the report and logs one warning per column.
func (t *nullTracker) flush(report *schema.LoadReport, logger *zap.Logger) {
	for _, column := range t.order {
		n := t.counts[column]
		report.NullCounts[t.file+": "+column] += n
		logger.Warn("Coerced cells to null",
			zap.String("file", t.file),
			zap.String("column", column),
			zap.Int("count", n),
			zap.String("example", t.example[column]),
		)
	}
}
