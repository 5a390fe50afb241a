package core

import (
	"math"
	"slices"

	"github.com/huangsam/ytdash/schema"
)

// AudienceFor maps a country code to its audience bucket.
func AudienceFor(code string) schema.AudienceBucket {
	switch code {
	case "US":
		return schema.AudienceUSA
	case "IN":
		return schema.AudienceIndia
	default:
		return schema.AudienceOther
	}
}

// SubscribedLabel renders a nullable subscription status.
func SubscribedLabel(b *bool) string {
	switch {
	case b == nil:
		return schema.SubscribedUnknown
	case *b:
		return schema.SubscribedTrue
	default:
		return schema.SubscribedFalse
	}
}

var subscribedOrder = []string{schema.SubscribedFalse, schema.SubscribedTrue, schema.SubscribedUnknown}

// BuildAudienceBreakdown sums the views of one video per subscription status
// and audience bucket. Rows match on the video ID when the export carries it
// and on the title otherwise.
func BuildAudienceBreakdown(countries []schema.CountrySubscriberRow, video schema.VideoRecord) []schema.AudienceSlice {
	byID := slices.ContainsFunc(countries, func(r schema.CountrySubscriberRow) bool { return r.VideoID != "" })

	type key struct {
		subscribed string
		audience   schema.AudienceBucket
	}
	sums := make(map[key]float64)
	for _, r := range countries {
		if byID && r.VideoID != video.ID || !byID && r.VideoTitle != video.Title {
			continue
		}
		k := key{SubscribedLabel(r.IsSubscribed), AudienceFor(r.CountryCode)}
		views := r.Views
		if math.IsNaN(views) {
			views = 0
		}
		sums[k] += views
	}

	out := make([]schema.AudienceSlice, 0, len(sums))
	for _, s := range subscribedOrder {
		for _, a := range schema.AllAudienceBuckets {
			if views, ok := sums[key{s, a}]; ok {
				out = append(out, schema.AudienceSlice{Subscribed: s, Audience: a, Views: views})
			}
		}
	}
	return out
}

// SummarizeComments totals the comment activity of one video.
func SummarizeComments(comments []schema.CommentRecord, videoID string) schema.CommentStats {
	var stats schema.CommentStats
	for _, c := range comments {
		if c.VideoID != videoID {
			continue
		}
		stats.Count++
		if !math.IsNaN(c.Likes) {
			stats.Likes += c.Likes
		}
		if !math.IsNaN(c.Replies) {
			stats.Replies += c.Replies
		}
	}
	return stats
}
