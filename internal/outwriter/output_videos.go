package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/schema"
)

// videoListReserved is the width taken by every video list column but the title.
const videoListReserved = 70

// writeVideosTable writes the selectable videos.
func writeVideosTable(w io.Writer, videos []schema.VideoRecord, cfg *contract.Config, f formatter, duration time.Duration) error {
	titleWidth := getMaxTitleWidth(cfg, videoListReserved)
	rows := make([][]string, 0, len(videos))
	for i, v := range videos {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			v.ID,
			contract.TruncateText(v.Title, titleWidth),
			orNA(schema.FormatDate(v.PublishDate)),
			f.count(v.Views),
			schema.FormatPercent(v.EngagementRatio, cfg.Precision),
			formatDuration(v),
		})
	}
	if err := renderTable(w, []string{"#", "ID", "Title", "Published", "Views", "Engagement", "Avg duration"}, rows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Listed %d videos in %v\n", len(videos), duration); err != nil {
		return err
	}
	return nil
}

// writeVideosCSV writes the selectable videos in CSV format.
func writeVideosCSV(w io.Writer, videos []schema.VideoRecord, f formatter) error {
	header := []string{
		"id",
		"title",
		"publish_date",
		"views",
		"engagement_ratio",
		"avg_duration_sec",
		"views_per_sub_gained",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range videos {
			rec := []string{
				v.ID,
				v.Title,
				schema.FormatDate(v.PublishDate),
				f.raw(v.Views),
				f.raw(v.EngagementRatio),
				f.raw(v.Metric(schema.MetricAvgDurationSec)),
				f.raw(v.ViewsPerSubGained),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
