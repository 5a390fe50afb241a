package schema

// PercentileBand summarizes daily views of the population on one day since publish.
type PercentileBand struct {
	Day       int
	Samples   int
	Mean      float64
	Median    float64
	P80       float64
	P20       float64
	CumMedian float64
	CumP80    float64
	CumP20    float64
}

// TracePoint is one day of a single video's view trajectory.
type TracePoint struct {
	Day        int
	Views      float64
	Cumulative float64
}

// VideoTrace is the first-days trajectory of one video.
type VideoTrace struct {
	VideoID string
	Title   string
	Points  []TracePoint
}

// ViewComparison pairs the population bands with the selected video's trace.
type ViewComparison struct {
	Bands []PercentileBand
	Video VideoTrace
}

// AudienceSlice is the summed views of one subscription status and audience bucket.
type AudienceSlice struct {
	Subscribed string
	Audience   AudienceBucket
	Views      float64
}

// CommentStats summarizes the comments of one video.
type CommentStats struct {
	Count   int     `json:"count"`
	Likes   float64 `json:"likes"`
	Replies float64 `json:"replies"`
}

// VideoAnalysis is everything shown for a single selected video.
type VideoAnalysis struct {
	Video      VideoRecord
	Deviation  *DeviationRow
	Audience   []AudienceSlice
	Comparison ViewComparison
	Comments   CommentStats
}
