package cmd

import (
	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/spf13/cobra"
)

// videoCmd analyzes a single video.
var videoCmd = &cobra.Command{
	Use:   "video [data-dir] --video <id|title>",
	Short: "Analyze one video against the rest of the channel.",
	Long: `Analyze a single video of the channel export.

Shows:
- The video's deviation from the 12-month medians
- Views by subscription status and audience (USA, India, Other)
- Views over the first 30 days against the channel's 20th, 50th and 80th percentiles

With --chart-dir the audience bar chart and the views line chart are rendered
as <id>.audience.<format> and <id>.views.<format>.

Examples:
  # Analyze a video by ID
  ytdash video --video 4OZip0cgOho

  # Analyze a video by title and render SVG charts
  ytdash video --video "How I Would Learn Data Science" --chart-dir charts --chart-format svg

  # Write the day-by-day comparison as CSV
  ytdash video --video 4OZip0cgOho --output csv --output-file views.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVideo(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run video analysis", err)
		}
	},
}

// videosCmd lists the selectable videos.
var videosCmd = &cobra.Command{
	Use:   "videos [data-dir]",
	Short: "List the videos of the channel export.",
	Long: `List the videos that can be passed to 'ytdash video --video'.

Videos are listed in export order with their publish date, views,
engagement ratio and average view duration.

Examples:
  # List every video
  ytdash videos

  # List the first 20 videos as JSON
  ytdash videos --limit 20 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVideos(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list videos", err)
		}
	},
}
