package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/ytdash/schema"
	"github.com/stretchr/testify/require"
)

const rawVideoHeader = "Video,Video title,Video publish time,Comments added,Shares,Dislikes,Likes," +
	"Subscribers lost,Subscribers gained,RPM (USD),CPM (USD),Average percentage viewed (%)," +
	"Average view duration,Views,Watch time (hours),Subscribers,Your estimated revenue (USD)," +
	"Impressions,Impressions click-through rate (%)"

func writeLines(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	require.NoError(t, err)
}

// writeChannelExport writes a three-video export published Jan, Jun and Dec 2023.
func writeChannelExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeLines(t, dir, schema.DefaultVideoFile,
		rawVideoHeader,
		"Total,,,30,15,5,250,1,12,2.8,6.5,37,0:01:50,5000,155,10,14.5,42100,5.8",
		`a,Alpha,"Jan 15, 2023",10,5,0,85,1,10,2.5,6,40,0:01:30,1000,25,9,2.5,12000,5.5`,
		`b,Bravo,"Jun 15, 2023",20,10,5,165,0,0,3,7,35,0:02:00,4000,130,-1,12,30000,6.1`,
		`c,Charlie,"Dec 15, 2023",0,0,0,0,0,2,0,0,0,1:00:00,0,0,2,0,100,0`,
	)
	writeLines(t, dir, schema.DefaultCountryFile,
		"Video Title,External Video ID,Video Length,Thumbnail link,Country Code,Is Subscribed,Views",
		"Alpha,a,90,x,US,True,600",
		"Alpha,a,90,x,IN,False,300",
		"Alpha,a,90,x,GB,False,100",
		"Alpha,a,90,x,US,True,50",
		"Bravo,b,120,x,US,False,999",
	)
	writeLines(t, dir, schema.DefaultTimeFile,
		"Date,Video Title,External Video ID,Video Length,Thumbnail link,Views",
		"17 Jan 2023,Alpha,a,90,x,40",
		"15 Jan 2023,Alpha,a,90,x,100",
		"16 Jan 2023,Alpha,a,90,x,60",
		"15 Jun 2023,Bravo,b,120,x,500",
		"16 Jun 2023,Bravo,b,120,x,300",
		"15 Dec 2023,Charlie,c,3600,x,0",
		"16 Dec 2023,Charlie,c,3600,x,10",
	)
	writeLines(t, dir, schema.DefaultCommentsFile,
		"Comment_ID,VidId,Comments,Like_Count,Reply_Count,Date",
		"c1,a,great,4,1,2023-01-16",
		"c2,a,nice,2,0,2023-01-17",
		"c3,b,meh,1,3,2023-06-16",
	)
	return dir
}

func sourceFiles(dir string) schema.SourceFiles {
	return schema.SourceFiles{
		Dir:          dir,
		VideoFile:    schema.DefaultVideoFile,
		CountryFile:  schema.DefaultCountryFile,
		TimeFile:     schema.DefaultTimeFile,
		CommentsFile: schema.DefaultCommentsFile,
	}
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// uniformVideo returns a video whose raw numeric cells all equal n.
func uniformVideo(id string, n float64, published *time.Time) schema.VideoRecord {
	d := time.Duration(n) * time.Second
	return schema.VideoRecord{
		ID: id, Title: "title " + id, PublishTime: published,
		CommentsAdded: n, Shares: n, Dislikes: n, Likes: n,
		SubscribersLost: n, SubscribersGained: n, RPM: n, CPM: n,
		AvgPercentViewed: n, AvgViewDuration: &d, Views: n,
		WatchTimeHours: n, Subscribers: n, EstimatedRevenue: n,
		Impressions: n, ImpressionsCTR: n,
	}
}
