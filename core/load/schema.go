package load

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/huangsam/ytdash/schema"
)

// Loader errors.
var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrMissingColumn  = errors.New("missing column")
)

// headerRule accepts a raw header once normalized.
type headerRule struct {
	exact  []string
	prefix []string
}

func (r headerRule) matches(norm string) bool {
	for _, e := range r.exact {
		if norm == e {
			return true
		}
	}
	for _, p := range r.prefix {
		if strings.HasPrefix(norm, p) {
			return true
		}
	}
	return false
}

// videoHeaderRules has one rule per position of schema.VideoColumns.
var videoHeaderRules = []headerRule{
	{exact: []string{"video"}},
	{exact: []string{"videotitle"}},
	{exact: []string{"videopublishtime"}},
	{exact: []string{"commentsadded"}},
	{exact: []string{"shares"}},
	{exact: []string{"dislikes"}},
	{exact: []string{"likes"}},
	{exact: []string{"subscriberslost"}},
	{exact: []string{"subscribersgained"}},
	{prefix: []string{"rpm"}},
	{prefix: []string{"cpm"}},
	{exact: []string{"averageviewed"}, prefix: []string{"averagepercentage"}},
	{exact: []string{"averageviewduration"}},
	{exact: []string{"views"}},
	{prefix: []string{"watchtime"}},
	{exact: []string{"subscribers"}},
	{prefix: []string{"yourestimatedrevenue"}},
	{exact: []string{"impressions"}},
	{prefix: []string{"impressionsc"}},
}

// normalizeHeader lowercases a header and keeps only letters and digits.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateVideoHeader checks that the raw headers of the video export follow
// the positional contract before they get renamed.
func ValidateVideoHeader(headers []string) error {
	if len(headers) != len(schema.VideoColumns) {
		return fmt.Errorf("%w: expected %d columns, found %d", ErrSchemaMismatch, len(schema.VideoColumns), len(headers))
	}
	for i, raw := range headers {
		if !videoHeaderRules[i].matches(normalizeHeader(raw)) {
			return fmt.Errorf("%w: column %d should be %q, found %q", ErrSchemaMismatch, i, schema.VideoColumns[i], raw)
		}
	}
	return nil
}

// columnIndex maps header names to their position.
type columnIndex map[string]int

func newColumnIndex(headers []string) columnIndex {
	idx := make(columnIndex, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

// require fails with ErrMissingColumn listing every absent name.
func (c columnIndex) require(file string, names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := c[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrMissingColumn, file, strings.Join(missing, ", "))
	}
	return nil
}

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}
