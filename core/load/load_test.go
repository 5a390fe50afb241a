package load

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huangsam/ytdash/schema"
)

func TestLoaderLoad(t *testing.T) {
	dir := writeExport(t)
	data, err := NewLoader(schema.SourceFiles{Dir: dir}, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)

	t.Run("videos skip totals row", func(t *testing.T) {
		require.Len(t, data.Videos, 3)
		assert.Equal(t, []string{"vid1", "vid2", "vid3"}, []string{data.Videos[0].ID, data.Videos[1].ID, data.Videos[2].ID})
		assert.Equal(t, 1, data.Report.SkippedRows)
	})

	t.Run("typed columns", func(t *testing.T) {
		v := data.Videos[0]
		assert.Equal(t, "First", v.Title)
		require.NotNil(t, v.PublishTime)
		assert.Equal(t, time.Date(2021, time.January, 5, 0, 0, 0, 0, time.UTC), *v.PublishTime)
		require.NotNil(t, v.AvgViewDuration)
		assert.Equal(t, 90*time.Second, *v.AvgViewDuration)
		assert.InDelta(t, 1000, v.Views, 1e-9)
		assert.InDelta(t, 45.5, v.AvgPercentViewed, 1e-9)
		assert.InDelta(t, 5.1, v.ImpressionsCTR, 1e-9)
	})

	t.Run("bad cells become null", func(t *testing.T) {
		v := data.Videos[2]
		assert.Nil(t, v.PublishTime)
		assert.Nil(t, v.AvgViewDuration)
		assert.True(t, math.IsNaN(v.CommentsAdded))
		assert.InDelta(t, 9, v.Shares, 1e-9)

		assert.Equal(t, 1, data.Report.NullCounts[schema.DefaultVideoFile+": "+schema.ColVideoPublishTime])
		assert.Equal(t, 1, data.Report.NullCounts[schema.DefaultVideoFile+": "+schema.ColAvgViewDuration])
		assert.Equal(t, 6, data.Report.TotalNulls())
	})

	t.Run("countries", func(t *testing.T) {
		require.Len(t, data.Countries, 3)
		assert.Equal(t, "vid1", data.Countries[0].VideoID)
		assert.Equal(t, "US", data.Countries[0].CountryCode)
		require.NotNil(t, data.Countries[0].IsSubscribed)
		assert.True(t, *data.Countries[0].IsSubscribed)
		assert.Nil(t, data.Countries[2].IsSubscribed)
	})

	t.Run("daily samples", func(t *testing.T) {
		require.Len(t, data.Daily, 4)
		assert.Equal(t, time.Date(2021, time.January, 6, 0, 0, 0, 0, time.UTC), *data.Daily[1].Date)
		assert.Nil(t, data.Daily[2].Date)
		assert.True(t, math.IsNaN(data.Daily[3].Views))
	})

	t.Run("missing comments export", func(t *testing.T) {
		assert.Empty(t, data.Comments)
		assert.NotNil(t, data.Comments)
	})

	assert.Equal(t, 3, data.Report.Rows[schema.DefaultVideoFile])
	assert.Equal(t, dir, data.Source.Dir)
}

func TestLoaderComments(t *testing.T) {
	dir := writeExport(t)
	writeFile(t, dir, "All_Comments_Final.csv",
		"Comments,Comment_ID,Reply_Count,Like_Count,Date,VidId,user_ID",
		"Great video,c1,2,10,2021-01-06T10:00:00Z,vid1,u1",
		"Thanks,c2,0,x,2021-01-07 08:30:00,vid1,u2",
	)

	data, err := NewLoader(schema.SourceFiles{Dir: dir}, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Comments, 2)
	assert.Equal(t, "c1", data.Comments[0].CommentID)
	assert.Equal(t, "vid1", data.Comments[0].VideoID)
	assert.InDelta(t, 2, data.Comments[0].Replies, 1e-9)
	require.NotNil(t, data.Comments[1].Date)
	assert.True(t, math.IsNaN(data.Comments[1].Likes))
}

func TestLoaderDuplicateIDs(t *testing.T) {
	dir := writeExport(t)
	writeFile(t, dir, "Aggregated_Metrics_By_Video.csv",
		rawVideoHeader,
		"Total,,,1,1,1,1,1,1,1,1,1,0:00:01,1,1,1,1,1,1",
		"vid1,First,\"Jan 5, 2021\",1,1,1,1,1,1,1,1,1,0:00:01,1,1,1,1,1,1",
		"vid1,Again,\"Jan 6, 2021\",1,1,1,1,1,1,1,1,1,0:00:01,1,1,1,1,1,1",
		",Blank,\"Jan 7, 2021\",1,1,1,1,1,1,1,1,1,0:00:01,1,1,1,1,1,1",
	)

	data, err := NewLoader(schema.SourceFiles{Dir: dir}, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "First", data.Videos[0].Title)
	assert.Equal(t, 1, data.Report.DuplicateIDs)
	assert.Equal(t, 2, data.Report.SkippedRows)
}

func TestLoaderErrors(t *testing.T) {
	t.Run("schema mismatch", func(t *testing.T) {
		dir := writeExport(t)
		writeFile(t, dir, "Aggregated_Metrics_By_Video.csv", "Video,Title", "Total,", "vid1,First")
		_, err := NewLoader(schema.SourceFiles{Dir: dir}, nil).Load(context.Background())
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("missing column", func(t *testing.T) {
		dir := writeExport(t)
		writeFile(t, dir, "Video_Performance_Over_Time.csv", "Date,Views", "5 Jan 2021,10")
		_, err := NewLoader(schema.SourceFiles{Dir: dir}, nil).Load(context.Background())
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(schema.SourceFiles{Dir: t.TempDir()}, nil).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLoader(schema.SourceFiles{Dir: writeExport(t)}, nil).Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoaderAbsolutePaths(t *testing.T) {
	dir := writeExport(t)
	files := schema.SourceFiles{
		Dir:       "/does/not/exist",
		VideoFile: filepath.Join(dir, schema.DefaultVideoFile),
	}
	files.CountryFile = filepath.Join(dir, schema.DefaultCountryFile)
	files.TimeFile = filepath.Join(dir, schema.DefaultTimeFile)
	files.CommentsFile = filepath.Join(dir, schema.DefaultCommentsFile)

	data, err := NewLoader(files, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Videos, 3)
}

func TestWithDefaults(t *testing.T) {
	files := WithDefaults(schema.SourceFiles{VideoFile: "custom.csv"})
	assert.Equal(t, "custom.csv", files.VideoFile)
	assert.Equal(t, schema.DefaultCountryFile, files.CountryFile)
	assert.Equal(t, schema.DefaultTimeFile, files.TimeFile)
	assert.Equal(t, schema.DefaultCommentsFile, files.CommentsFile)
}
