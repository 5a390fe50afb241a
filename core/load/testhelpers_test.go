package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const rawVideoHeader = "Video,Video title,Video publish time,Comments added,Shares,Dislikes,Likes," +
	"Subscribers lost,Subscribers gained,RPM (USD),CPM (USD),Average percentage viewed (%)," +
	"Average view duration,Views,Watch time (hours),Subscribers,Your estimated revenue (USD)," +
	"Impressions,Impressions click-through rate (%)"

// writeFile writes lines to name under dir.
func writeFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	require.NoError(t, err)
}

// writeExport writes a small but complete channel export into a temp dir.
func writeExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "Aggregated_Metrics_By_Video.csv",
		rawVideoHeader,
		"Total,,,100,50,2,400,3,30,5.1,10.2,40.5,0:04:10,10000,800,27,51,90000,4.4",
		"vid1,First,\"Jan 5, 2021\",10,5,0,40,1,3,5,10,45.5,0:01:30,1000,20,2,5.5,9000,5.1",
		"vid2,Second,\"Mar 10, 2021\",20,8,1,60,0,0,6,11,38,1:02:03,2000,70,5,12,15000,3.9",
		"vid3,Third,bogus,x,9,0,30,0,4,4,9,51,99:99:99,500,10,1,2,4000,4",
	)
	writeFile(t, dir, "Aggregated_Metrics_By_Country_And_Subscriber_Status.csv",
		"Video Title,External Video ID,Video Length,Thumbnail link,Country Code,Is Subscribed,Views",
		"First,vid1,90,x,US,True,300",
		"First,vid1,90,x,IN,False,200",
		"Second,vid2,120,x,DE,,150",
	)
	writeFile(t, dir, "Video_Performance_Over_Time.csv",
		"Date,Video Title,External Video ID,Video Length,Thumbnail link,Views",
		"5 Jan 2021,First,vid1,90,x,100",
		"6 Jan 2021,First,vid1,90,x,50",
		"bad date,First,vid1,90,x,25",
		"10 Mar 2021,Second,vid2,120,x,n/a",
	)
	return dir
}
