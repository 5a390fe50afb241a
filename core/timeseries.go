package core

import (
	"errors"
	"math"
	"slices"

	"github.com/huangsam/ytdash/core/algo"
	"github.com/huangsam/ytdash/schema"
)

// ErrVideoNotFound is returned when a selected video is not in the dataset.
var ErrVideoNotFound = errors.New("video not found")

// joinedSample is a daily sample matched to its video.
type joinedSample struct {
	video *schema.VideoRecord
	day   int
	known bool // false when either date is missing
	views float64
}

// joinDaily matches daily samples to videos on the video ID and computes the
// days elapsed since publish. Samples of unknown videos are dropped.
func joinDaily(videos []schema.VideoRecord, daily []schema.DailySample) []joinedSample {
	byID := make(map[string]*schema.VideoRecord, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	joined := make([]joinedSample, 0, len(daily))
	for _, s := range daily {
		v, ok := byID[s.VideoID]
		if !ok {
			continue
		}
		js := joinedSample{video: v, views: s.Views}
		if s.Date != nil && v.PublishTime != nil {
			js.day = algo.FloorDays(s.Date.Sub(*v.PublishTime))
			js.known = true
		}
		joined = append(joined, js)
	}
	return joined
}

// BuildViewComparison builds the percentile bands of daily views over the first
// days since publish for videos of the last 12 months, and the trace of videoID.
func BuildViewComparison(videos []schema.VideoRecord, daily []schema.DailySample, videoID string) (schema.ViewComparison, error) {
	idx := slices.IndexFunc(videos, func(v schema.VideoRecord) bool { return v.ID == videoID })
	if idx < 0 {
		return schema.ViewComparison{}, ErrVideoNotFound
	}
	selected := videos[idx]
	joined := joinDaily(videos, daily)

	return schema.ViewComparison{
		Bands: percentileBands(videos, joined),
		Video: traceOf(selected, joined),
	}, nil
}

// percentileBands groups the population by day since publish.
func percentileBands(videos []schema.VideoRecord, joined []joinedSample) []schema.PercentileBand {
	maxPublish, ok := latestPublish(videos)
	if !ok {
		return []schema.PercentileBand{}
	}
	cutoff := algo.SubtractMonths(maxPublish, schema.LongWindowMonths)

	var buckets [schema.MaxTrackedDay + 1][]float64
	for _, js := range joined {
		if !js.known || math.IsNaN(js.views) || js.day < 0 || js.day > schema.MaxTrackedDay {
			continue
		}
		if js.video.PublishTime.Before(cutoff) {
			continue
		}
		buckets[js.day] = append(buckets[js.day], js.views)
	}

	bands := make([]schema.PercentileBand, 0, len(buckets))
	for day, views := range buckets {
		if len(views) == 0 {
			continue
		}
		bands = append(bands, schema.PercentileBand{
			Day:     day,
			Samples: len(views),
			Mean:    algo.Mean(views),
			Median:  algo.Median(views),
			P80:     algo.Percentile(views, 80),
			P20:     algo.Percentile(views, 20),
		})
	}

	cumMedian := algo.CumSum(bandValues(bands, func(b schema.PercentileBand) float64 { return b.Median }))
	cumP80 := algo.CumSum(bandValues(bands, func(b schema.PercentileBand) float64 { return b.P80 }))
	cumP20 := algo.CumSum(bandValues(bands, func(b schema.PercentileBand) float64 { return b.P20 }))
	for i := range bands {
		bands[i].CumMedian = cumMedian[i]
		bands[i].CumP80 = cumP80[i]
		bands[i].CumP20 = cumP20[i]
	}
	return bands
}

func bandValues(bands []schema.PercentileBand, pick func(schema.PercentileBand) float64) []float64 {
	out := make([]float64, len(bands))
	for i, b := range bands {
		out[i] = pick(b)
	}
	return out
}

// traceOf returns the daily views of one video over the tracked days.
func traceOf(video schema.VideoRecord, joined []joinedSample) schema.VideoTrace {
	points := make([]schema.TracePoint, 0, schema.MaxTrackedDay+1)
	for _, js := range joined {
		if js.video.ID != video.ID || !js.known || js.day < 0 || js.day > schema.MaxTrackedDay {
			continue
		}
		points = append(points, schema.TracePoint{Day: js.day, Views: js.views})
	}
	slices.SortStableFunc(points, func(a, b schema.TracePoint) int { return a.Day - b.Day })

	views := make([]float64, len(points))
	for i, p := range points {
		views[i] = p.Views
	}
	for i, c := range algo.CumSum(views) {
		points[i].Cumulative = c
	}
	return schema.VideoTrace{VideoID: video.ID, Title: video.Title, Points: points}
}
