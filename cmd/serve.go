package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd starts the local dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve [data-dir]",
	Short: "Serve the dashboard over HTTP.",
	Long: `Start a local HTML dashboard with the Aggregate Metrics and
Individual Video Analysis views, plus their JSON API.

The export is parsed once at startup and kept in memory until the
server stops. Stop it with Ctrl+C.

Routes:
  /aggregate, /videos, /videos/{id}         HTML pages
  /videos/{id}/audience.png|svg              audience chart
  /videos/{id}/views.png|svg                 views chart
  /api/aggregate, /api/videos, /api/videos/{id}  JSON
  /healthz                                   liveness

Examples:
  # Serve the export in the current directory
  ytdash serve

  # Listen on every interface
  ytdash serve ./exports/my-channel --addr :8080`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		memo := core.NewDatasetProvider(cfg.Files, contract.Logger())
		if _, err := memo.Get(ctx); err != nil {
			return fmt.Errorf("failed to load channel export: %w", err)
		}
		srv, err := web.NewServer(cfg, memo, contract.Logger())
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}
