package cmd

import (
	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/spf13/cobra"
)

// aggregateCmd benchmarks every video of the channel.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [data-dir]",
	Short: "Show headline medians and each video's deviation from them.",
	Long: `Benchmark every video of a channel export against its recent history.

Shows the medians of the videos published in the trailing 6 and 12 months
for the headline metrics, with the change between the two windows, followed
by every video's relative deviation from the 12-month median.

Windows end at the latest publish date of the export, not today.

Examples:
  # Aggregate the export in the current directory
  ytdash aggregate

  # Aggregate another export and keep the ten most recent rows
  ytdash aggregate ./exports/my-channel --limit 10

  # Export deviations for a notebook
  ytdash aggregate --output parquet --output-file channel

  # Record the run in the SQLite run history
  ytdash aggregate --analysis-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAggregate(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run aggregate analysis", err)
		}
	},
}
