// Package load reads the CSV exports of a channel into typed records.
package load

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/huangsam/ytdash/schema"
	"go.uber.org/zap"
)

// Loader reads the four CSV exports of one channel.
type Loader struct {
	files  schema.SourceFiles
	logger *zap.Logger
}

// NewLoader creates a loader. Empty file names fall back to the export defaults.
func NewLoader(files schema.SourceFiles, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{files: WithDefaults(files), logger: logger}
}

// WithDefaults fills empty file names with the names used by channel exports.
func WithDefaults(files schema.SourceFiles) schema.SourceFiles {
	if files.VideoFile == "" {
		files.VideoFile = schema.DefaultVideoFile
	}
	if files.CountryFile == "" {
		files.CountryFile = schema.DefaultCountryFile
	}
	if files.TimeFile == "" {
		files.TimeFile = schema.DefaultTimeFile
	}
	if files.CommentsFile == "" {
		files.CommentsFile = schema.DefaultCommentsFile
	}
	return files
}

func (l *Loader) path(name string) string {
	if filepath.IsAbs(name) || l.files.Dir == "" {
		return name
	}
	return filepath.Join(l.files.Dir, name)
}

// Load reads every source and returns the typed dataset.
func (l *Loader) Load(ctx context.Context) (*schema.Dataset, error) {
	report := schema.LoadReport{
		Rows:       make(map[string]int),
		NullCounts: make(map[string]int),
	}

	videos, err := l.loadVideos(&report)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	countries, err := l.loadCountries(&report)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	daily, err := l.loadDaily(&report)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comments, err := l.loadComments(&report)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded channel export",
		zap.String("dir", l.files.Dir),
		zap.Int("videos", len(videos)),
		zap.Int("country_rows", len(countries)),
		zap.Int("daily_rows", len(daily)),
		zap.Int("comments", len(comments)),
		zap.Int("nulls", report.TotalNulls()),
	)

	return &schema.Dataset{
		Videos:    videos,
		Countries: countries,
		Daily:     daily,
		Comments:  comments,
		Report:    report,
		Source:    l.files,
		LoadedAt:  time.Now(),
	}, nil
}

// readFrame reads a CSV file into a frame of string columns.
func readFrame(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse %s: %w", path, df.Err)
	}
	names := df.Names()
	for i, n := range names {
		names[i] = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
	}
	if err := df.SetNames(names...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to clean headers of %s: %w", path, err)
	}
	return df, nil
}

// stringColumns extracts the named columns as raw cell values.
func stringColumns(df dataframe.DataFrame, names ...string) map[string][]string {
	cols := make(map[string][]string, len(names))
	for _, n := range names {
		cols[n] = df.Col(n).Records()
	}
	return cols
}

func (l *Loader) loadVideos(report *schema.LoadReport) ([]schema.VideoRecord, error) {
	name := l.files.VideoFile
	df, err := readFrame(l.path(name))
	if err != nil {
		return nil, err
	}
	if err := ValidateVideoHeader(df.Names()); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := df.SetNames(schema.VideoColumns...); err != nil {
		return nil, fmt.Errorf("failed to rename columns of %s: %w", name, err)
	}

	// The first data row of the export holds channel totals.
	if df.Nrow() > 0 {
		report.SkippedRows++
	}
	n := df.Nrow() - 1
	if n <= 0 {
		report.Rows[name] = 0
		return []schema.VideoRecord{}, nil
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	df = df.Subset(rows)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to drop totals row of %s: %w", name, df.Err)
	}

	cols := stringColumns(df, schema.VideoColumns...)
	nulls := newNullTracker(name)
	seen := make(map[string]struct{}, n)
	videos := make([]schema.VideoRecord, 0, n)
	for i := range n {
		cell := func(c string) string { return cols[c][i] }
		id := cell(schema.ColVideo)
		if isBlank(id) {
			report.SkippedRows++
			continue
		}
		if _, dup := seen[id]; dup {
			report.DuplicateIDs++
			l.logger.Warn("Skipping duplicate video id", zap.String("file", name), zap.String("id", id))
			continue
		}
		seen[id] = struct{}{}

		videos = append(videos, schema.VideoRecord{
			ID:                id,
			Title:             cell(schema.ColVideoTitle),
			PublishTime:       nulls.publishTime(schema.ColVideoPublishTime, cell(schema.ColVideoPublishTime)),
			CommentsAdded:     nulls.number(schema.ColCommentsAdded, cell(schema.ColCommentsAdded)),
			Shares:            nulls.number(schema.ColShares, cell(schema.ColShares)),
			Dislikes:          nulls.number(schema.ColDislikes, cell(schema.ColDislikes)),
			Likes:             nulls.number(schema.ColLikes, cell(schema.ColLikes)),
			SubscribersLost:   nulls.number(schema.ColSubscribersLost, cell(schema.ColSubscribersLost)),
			SubscribersGained: nulls.number(schema.ColSubscribersGained, cell(schema.ColSubscribersGained)),
			RPM:               nulls.number(schema.ColRPM, cell(schema.ColRPM)),
			CPM:               nulls.number(schema.ColCPM, cell(schema.ColCPM)),
			AvgPercentViewed:  nulls.number(schema.ColAvgPercentViewed, cell(schema.ColAvgPercentViewed)),
			AvgViewDuration:   nulls.duration(schema.ColAvgViewDuration, cell(schema.ColAvgViewDuration)),
			Views:             nulls.number(schema.ColViews, cell(schema.ColViews)),
			WatchTimeHours:    nulls.number(schema.ColWatchTimeHours, cell(schema.ColWatchTimeHours)),
			Subscribers:       nulls.number(schema.ColSubscribers, cell(schema.ColSubscribers)),
			EstimatedRevenue:  nulls.number(schema.ColEstimatedRevenue, cell(schema.ColEstimatedRevenue)),
			Impressions:       nulls.number(schema.ColImpressions, cell(schema.ColImpressions)),
			ImpressionsCTR:    nulls.number(schema.ColImpressionsCTR, cell(schema.ColImpressionsCTR)),
		})
	}
	nulls.flush(report, l.logger)
	report.Rows[name] = len(videos)
	return videos, nil
}

func (l *Loader) loadCountries(report *schema.LoadReport) ([]schema.CountrySubscriberRow, error) {
	name := l.files.CountryFile
	df, err := readFrame(l.path(name))
	if err != nil {
		return nil, err
	}
	idx := newColumnIndex(df.Names())
	required := []string{schema.ColCountryVideoTitle, schema.ColCountryCode, schema.ColIsSubscribed, schema.ColViews}
	if err := idx.require(name, required...); err != nil {
		return nil, err
	}
	cols := stringColumns(df, required...)
	var ids []string
	if idx.has(schema.ColExternalVideoID) {
		ids = df.Col(schema.ColExternalVideoID).Records()
	}

	nulls := newNullTracker(name)
	rows := make([]schema.CountrySubscriberRow, df.Nrow())
	for i := range rows {
		row := schema.CountrySubscriberRow{
			VideoTitle:   cols[schema.ColCountryVideoTitle][i],
			CountryCode:  cols[schema.ColCountryCode][i],
			IsSubscribed: nulls.subscribed(schema.ColIsSubscribed, cols[schema.ColIsSubscribed][i]),
			Views:        nulls.number(schema.ColViews, cols[schema.ColViews][i]),
		}
		if ids != nil && !isBlank(ids[i]) {
			row.VideoID = ids[i]
		}
		rows[i] = row
	}
	nulls.flush(report, l.logger)
	report.Rows[name] = len(rows)
	return rows, nil
}

func (l *Loader) loadDaily(report *schema.LoadReport) ([]schema.DailySample, error) {
	name := l.files.TimeFile
	df, err := readFrame(l.path(name))
	if err != nil {
		return nil, err
	}
	required := []string{schema.ColDate, schema.ColExternalVideoID, schema.ColCountryVideoTitle, schema.ColViews}
	if err := newColumnIndex(df.Names()).require(name, required...); err != nil {
		return nil, err
	}
	cols := stringColumns(df, required...)

	nulls := newNullTracker(name)
	samples := make([]schema.DailySample, df.Nrow())
	for i := range samples {
		samples[i] = schema.DailySample{
			VideoID:    cols[schema.ColExternalVideoID][i],
			VideoTitle: cols[schema.ColCountryVideoTitle][i],
			Date:       nulls.dailyDate(schema.ColDate, cols[schema.ColDate][i]),
			Views:      nulls.number(schema.ColViews, cols[schema.ColViews][i]),
		}
	}
	nulls.flush(report, l.logger)
	report.Rows[name] = len(samples)
	return samples, nil
}

// loadComments reads the optional comments export. A missing file is not an error.
func (l *Loader) loadComments(report *schema.LoadReport) ([]schema.CommentRecord, error) {
	name := l.files.CommentsFile
	path := l.path(name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		l.logger.Info("No comments export found", zap.String("file", path))
		return []schema.CommentRecord{}, nil
	}
	df, err := readFrame(path)
	if err != nil {
		return nil, err
	}
	required := []string{schema.ColCommentID, schema.ColCommentVideoID, schema.ColCommentText, schema.ColCommentLikes, schema.ColCommentReplies, schema.ColCommentDate}
	if err := newColumnIndex(df.Names()).require(name, required...); err != nil {
		return nil, err
	}
	cols := stringColumns(df, required...)

	nulls := newNullTracker(name)
	comments := make([]schema.CommentRecord, df.Nrow())
	for i := range comments {
		comments[i] = schema.CommentRecord{
			CommentID: cols[schema.ColCommentID][i],
			VideoID:   cols[schema.ColCommentVideoID][i],
			Text:      cols[schema.ColCommentText][i],
			Likes:     nulls.number(schema.ColCommentLikes, cols[schema.ColCommentLikes][i]),
			Replies:   nulls.number(schema.ColCommentReplies, cols[schema.ColCommentReplies][i]),
			Date:      nulls.timestamp(schema.ColCommentDate, cols[schema.ColCommentDate][i]),
		}
	}
	nulls.flush(report, l.logger)
	report.Rows[name] = len(comments)
	return comments, nil
}
