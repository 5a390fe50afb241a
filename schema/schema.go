// Package schema has models, column contracts and constants shared by all parts of ytdash.
package schema

import (
	"math"
	"time"
)

// VideoRecord is one row of the video metrics export.
// Numeric cells that could not be parsed hold NaN.
type VideoRecord struct {
	ID                string
	Title             string
	PublishTime       *time.Time // nil when the cell could not be parsed
	CommentsAdded     float64
	Shares            float64
	Dislikes          float64
	Likes             float64
	SubscribersLost   float64
	SubscribersGained float64
	RPM               float64
	CPM               float64
	AvgPercentViewed  float64
	AvgViewDuration   *time.Duration // wall-clock H:MM:SS, nil when unparsable
	Views             float64
	WatchTimeHours    float64
	Subscribers       float64
	EstimatedRevenue  float64
	Impressions       float64
	ImpressionsCTR    float64

	// Derived fields, filled by the feature engineer.
	AvgDurationSec    int        // whole seconds of AvgViewDuration
	EngagementRatio   float64    // (comments+shares+dislikes+likes)/views
	ViewsPerSubGained float64    // views / subscribers gained
	PublishDate       *time.Time // PublishTime truncated to the day
}

// Metric returns the value of a numeric column. Unknown keys and a missing
// average view duration yield NaN.
func (v VideoRecord) Metric(key MetricKey) float64 {
	switch key {
	case MetricCommentsAdded:
		return v.CommentsAdded
	case MetricShares:
		return v.Shares
	case MetricDislikes:
		return v.Dislikes
	case MetricLikes:
		return v.Likes
	case MetricSubscribersLost:
		return v.SubscribersLost
	case MetricSubscribersGained:
		return v.SubscribersGained
	case MetricRPM:
		return v.RPM
	case MetricCPM:
		return v.CPM
	case MetricAvgPercentViewed:
		return v.AvgPercentViewed
	case MetricViews:
		return v.Views
	case MetricWatchTimeHours:
		return v.WatchTimeHours
	case MetricSubscribers:
		return v.Subscribers
	case MetricEstimatedRevenue:
		return v.EstimatedRevenue
	case MetricImpressions:
		return v.Impressions
	case MetricImpressionsCTR:
		return v.ImpressionsCTR
	case MetricAvgDurationSec:
		if v.AvgViewDuration == nil {
			return math.NaN()
		}
		return float64(v.AvgDurationSec)
	case MetricEngagementRatio:
		return v.EngagementRatio
	case MetricViewsPerSubGained:
		return v.ViewsPerSubGained
	default:
		return math.NaN()
	}
}

// CountrySubscriberRow is one row of the country and subscriber status export.
type CountrySubscriberRow struct {
	VideoTitle   string
	VideoID      string // empty when the export has no External Video ID column
	CountryCode  string
	IsSubscribed *bool
	Views        float64
}

// DailySample is one row of the per-day performance export.
type DailySample struct {
	VideoID    string
	VideoTitle string
	Date       *time.Time
	Views      float64
}

// CommentRecord is one row of the optional comments export.
type CommentRecord struct {
	CommentID string
	VideoID   string
	Text      string
	Likes     float64
	Replies   float64
	Date      *time.Time
}

// SourceFiles locates the CSV exports of one channel.
type SourceFiles struct {
	Dir          string
	VideoFile    string
	CountryFile  string
	TimeFile     string
	CommentsFile string // optional, missing file yields no comments
}

// LoadReport summarizes what the loader had to coerce.
type LoadReport struct {
	Rows         map[string]int // rows kept per source file
	NullCounts   map[string]int // "<file>: <column>" -> cells coerced to null
	DuplicateIDs int
	SkippedRows  int // totals row and rows with an empty video id
}

// TotalNulls returns the number of cells coerced to null across all sources.
func (r LoadReport) TotalNulls() int {
	total := 0
	for _, n := range r.NullCounts {
		total += n
	}
	return total
}

// Dataset is the full, read-only output of the loader.
type Dataset struct {
	Videos    []VideoRecord
	Countries []CountrySubscriberRow
	Daily     []DailySample
	Comments  []CommentRecord
	Report    LoadReport
	Source    SourceFiles
	LoadedAt  time.Time
}

// FindVideo looks a video up by ID first, then by exact title.
func (d *Dataset) FindVideo(idOrTitle string) (VideoRecord, bool) {
	for _, v := range d.Videos {
		if v.ID == idOrTitle {
			return v, true
		}
	}
	for _, v := range d.Videos {
		if v.Title == idOrTitle {
			return v, true
		}
	}
	return VideoRecord{}, false
}
