package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/heatgate/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd starts the REST API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve heatmaps over HTTP for a web renderer",
	Long: `Start the REST API. Every request builds its heatmap from the store.

Endpoints:
  GET /api/heatmap
  GET /api/heatmap/highlight/{id}
  GET /api/evaluations/{id}/comparison
  GET /api/check
  GET /api/tooltip-position
  GET /healthz
  GET /metrics

Examples:
  heatgate serve --addr :8080 -p sockshop -s staging --service carts`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.Serve(ctx, cfg, storeManager)
	},
}
