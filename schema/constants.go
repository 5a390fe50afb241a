package schema

// Custom string types for type safety.
type (
	// MetricKey names a numeric column of the video metrics table.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// ChartFormat represents the image encoding used for rendered charts.
	ChartFormat string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// AudienceBucket is the coarse country grouping shown in audience breakdowns.
	AudienceBucket string
)

// Canonical column names of the video metrics table, in positional order.
const (
	ColVideo             = "Video"
	ColVideoTitle        = "Video title"
	ColVideoPublishTime  = "Video publish time"
	ColCommentsAdded     = "Comments added"
	ColShares            = "Shares"
	ColDislikes          = "Dislikes"
	ColLikes             = "Likes"
	ColSubscribersLost   = "Subscribers lost"
	ColSubscribersGained = "Subscribers gained"
	ColRPM               = "RPM(USD)"
	ColCPM               = "CPM(USD)"
	ColAvgPercentViewed  = "Average % viewed"
	ColAvgViewDuration   = "Average view duration"
	ColViews             = "Views"
	ColWatchTimeHours    = "Watch time (hours)"
	ColSubscribers       = "Subscribers"
	ColEstimatedRevenue  = "Your estimated revenue (USD)"
	ColImpressions       = "Impressions"
	ColImpressionsCTR    = "Impressions ctr(%)"
	ColPublishDate       = "Publish_date"
	ColCountryVideoTitle = "Video Title"
	ColCountryCode       = "Country Code"
	ColIsSubscribed      = "Is Subscribed"
	ColExternalVideoID   = "External Video ID"
	ColDate              = "Date"
	ColCommentID         = "Comment_ID"
	ColCommentVideoID    = "VidId"
	ColCommentText       = "Comments"
	ColCommentLikes      = "Like_Count"
	ColCommentReplies    = "Reply_Count"
	ColCommentDate       = "Date"
	ColDaysPublished     = "days_published"
	ColAudience          = "Country"
)

// VideoColumns is the positional column contract of the video metrics export.
var VideoColumns = []string{
	ColVideo,
	ColVideoTitle,
	ColVideoPublishTime,
	ColCommentsAdded,
	ColShares,
	ColDislikes,
	ColLikes,
	ColSubscribersLost,
	ColSubscribersGained,
	ColRPM,
	ColCPM,
	ColAvgPercentViewed,
	ColAvgViewDuration,
	ColViews,
	ColWatchTimeHours,
	ColSubscribers,
	ColEstimatedRevenue,
	ColImpressions,
	ColImpressionsCTR,
}

// Numeric metrics of a video, raw and derived.
const (
	MetricCommentsAdded     MetricKey = ColCommentsAdded
	MetricShares            MetricKey = ColShares
	MetricDislikes          MetricKey = ColDislikes
	MetricLikes             MetricKey = ColLikes
	MetricSubscribersLost   MetricKey = ColSubscribersLost
	MetricSubscribersGained MetricKey = ColSubscribersGained
	MetricRPM               MetricKey = ColRPM
	MetricCPM               MetricKey = ColCPM
	MetricAvgPercentViewed  MetricKey = ColAvgPercentViewed
	MetricViews             MetricKey = ColViews
	MetricWatchTimeHours    MetricKey = ColWatchTimeHours
	MetricSubscribers       MetricKey = ColSubscribers
	MetricEstimatedRevenue  MetricKey = ColEstimatedRevenue
	MetricImpressions       MetricKey = ColImpressions
	MetricImpressionsCTR    MetricKey = ColImpressionsCTR
	MetricAvgDurationSec    MetricKey = "Avg_duration_sec"
	MetricEngagementRatio   MetricKey = "Engagement_ratio"
	MetricViewsPerSubGained MetricKey = "Views / sub gained"
)

// NumericMetrics lists every numeric column in table order. Benchmarks and
// deviations are computed over all of them.
var NumericMetrics = []MetricKey{
	MetricCommentsAdded,
	MetricShares,
	MetricDislikes,
	MetricLikes,
	MetricSubscribersLost,
	MetricSubscribersGained,
	MetricRPM,
	MetricCPM,
	MetricAvgPercentViewed,
	MetricViews,
	MetricWatchTimeHours,
	MetricSubscribers,
	MetricEstimatedRevenue,
	MetricImpressions,
	MetricImpressionsCTR,
	MetricAvgDurationSec,
	MetricEngagementRatio,
	MetricViewsPerSubGained,
}

// HeadlineMetrics is the display subset used for tiles and the deviation table.
var HeadlineMetrics = []MetricKey{
	MetricViews,
	MetricLikes,
	MetricSubscribers,
	MetricShares,
	MetricCommentsAdded,
	MetricRPM,
	MetricAvgPercentViewed,
	MetricAvgDurationSec,
	MetricEngagementRatio,
	MetricViewsPerSubGained,
}

// Audience buckets for country codes.
const (
	AudienceUSA   AudienceBucket = "USA"
	AudienceIndia AudienceBucket = "India"
	AudienceOther AudienceBucket = "Other"
)

// AllAudienceBuckets is the display order of audience buckets.
var AllAudienceBuckets = []AudienceBucket{AudienceUSA, AudienceIndia, AudienceOther}

// Subscription status labels.
const (
	SubscribedFalse   = "False"
	SubscribedTrue    = "True"
	SubscribedUnknown = "Unknown"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All chart formats supported.
const (
	PNGChart ChartFormat = "png" // default
	SVGChart ChartFormat = "svg"
)

// All run history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Default file names of a channel export.
const (
	DefaultVideoFile    = "Aggregated_Metrics_By_Video.csv"
	DefaultCountryFile  = "Aggregated_Metrics_By_Country_And_Subscriber_Status.csv"
	DefaultTimeFile     = "Video_Performance_Over_Time.csv"
	DefaultCommentsFile = "All_Comments_Final.csv"
)

// Window sizes in calendar months.
const (
	ShortWindowMonths = 6
	LongWindowMonths  = 12
)

// MaxTrackedDay is the last day since publish covered by the view comparison.
const MaxTrackedDay = 30

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	PNGChart: {},
	SVGChart: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
