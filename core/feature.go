package core

import (
	"time"

	"github.com/huangsam/ytdash/schema"
)

// DeriveFeatures returns a copy of videos with the derived columns filled in.
// Ratios follow IEEE division, so zero denominators give NaN or Inf.
func DeriveFeatures(videos []schema.VideoRecord) []schema.VideoRecord {
	out := make([]schema.VideoRecord, len(videos))
	for i, v := range videos {
		if v.AvgViewDuration != nil {
			v.AvgDurationSec = int(*v.AvgViewDuration / time.Second)
		} else {
			v.AvgDurationSec = 0
		}
		v.EngagementRatio = (v.CommentsAdded + v.Shares + v.Dislikes + v.Likes) / v.Views
		v.ViewsPerSubGained = v.Views / v.SubscribersGained
		v.PublishDate = truncateDay(v.PublishTime)
		out[i] = v
	}
	return out
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

// withFeatures returns a dataset whose videos carry derived features.
func withFeatures(data *schema.Dataset) *schema.Dataset {
	derived := *data
	derived.Videos = DeriveFeatures(data.Videos)
	return &derived
}
