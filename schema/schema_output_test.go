package schema_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/huangsam/ytdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"Integer", 1000, "1000"},
		{"Fraction", 0.25, "0.25"},
		{"Negative", -1.5, "-1.5"},
		{"NaN", math.NaN(), "null"},
		{"Positive Infinity", math.Inf(1), `"+Inf"`},
		{"Negative Infinity", math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(schema.Number(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestNumberUnmarshalJSON(t *testing.T) {
	var values struct {
		A schema.Number `json:"a"`
		B schema.Number `json:"b"`
		C schema.Number `json:"c"`
		D schema.Number `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":2.5,"b":null,"c":"+Inf","d":"-Inf"}`), &values))

	assert.Equal(t, 2.5, float64(values.A))
	assert.True(t, math.IsNaN(float64(values.B)))
	assert.True(t, math.IsInf(float64(values.C), 1))
	assert.True(t, math.IsInf(float64(values.D), -1))

	var n schema.Number
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "100.00%", schema.FormatPercent(1, 2))
	assert.Equal(t, "-33.3%", schema.FormatPercent(-0.3333, 1))
	assert.Equal(t, "n/a", schema.FormatPercent(math.NaN(), 2))
	assert.Equal(t, "n/a", schema.FormatPercent(math.Inf(1), 2))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.5, schema.RoundTo(2.45, 1))
	assert.Equal(t, -2.5, schema.RoundTo(-2.45, 1))
	assert.Equal(t, 3.0, schema.RoundTo(2.5, 0))
	assert.True(t, math.IsNaN(schema.RoundTo(math.NaN(), 1)))
	assert.True(t, math.IsInf(schema.RoundTo(math.Inf(-1), 1), -1))
}

func TestFormatDate(t *testing.T) {
	assert.Empty(t, schema.FormatDate(nil))
	d := time.Date(2023, 12, 15, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-12-15", schema.FormatDate(&d))
}

func TestEnrichAggregateKeepsNonFinite(t *testing.T) {
	day := time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)
	result := schema.BenchmarkResult{
		MaxPublish: &day,
		Rows6:      1,
		Rows12:     1,
		Medians: []schema.MetricMedian{
			{Key: schema.MetricViews, Median6: 0, Median12: 0, Delta: math.NaN()},
		},
		Deviations: []schema.DeviationRow{
			{VideoID: "a", Title: "Alpha", PublishDate: &day, Values: map[schema.MetricKey]float64{schema.MetricViews: math.Inf(1)}},
		},
	}

	output := schema.EnrichAggregate(result)
	require.Len(t, output.Tiles, 1)
	assert.Equal(t, "n/a", output.Tiles[0].DeltaLabel)

	data, err := json.Marshal(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"delta":null`)
	assert.Contains(t, string(data), `"Views":"+Inf"`)
}
