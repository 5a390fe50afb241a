package contract

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySign(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		sign   Sign
		wantOK bool
	}{
		{"negative", -0.25, SignNegative, true},
		{"zero", 0, SignZero, true},
		{"positive", 1.5, SignPositive, true},
		{"positive infinity", math.Inf(1), SignPositive, true},
		{"negative infinity", math.Inf(-1), SignNegative, true},
		{"nan cannot classify", math.NaN(), SignUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sign, ok := ClassifySign(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.sign, sign)
		})
	}
}

func TestColorizeBySign(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, NegativeColor.Sprint("-5%"), ColorizeBySign(-0.05, "-5%"))
	assert.Equal(t, PositiveColor.Sprint("5%"), ColorizeBySign(0.05, "5%"))
	assert.Equal(t, "0%", ColorizeBySign(0, "0%"))
	assert.Equal(t, "n/a", ColorizeBySign(math.NaN(), "n/a"))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetAnalysisDBFilePath(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetAnalysisDBFilePath(), ".ytdash_analysis.db"))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"fits", "short title", 20, "short title"},
		{"truncated", "a very long video title", 10, "a very ..."},
		{"tiny width left alone", "abcdef", 3, "abcdef"},
		{"unicode", "日本語のタイトルです", 6, "日本語..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, Logger())
	SetLogger(nil)
	assert.NotNil(t, Logger())
}
