package cmd

import (
	"github.com/huangsam/heatgate/core"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD quality gates.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce the quality gate in CI/CD pipelines (fails build on violations)",
	Long: `Inspect the newest evaluation for a project, stage and service and exit
non-zero when it failed.

A warning passes by default; use --fail-on-warning to block on warnings too.

Examples:
  # Gate a deployment on the latest evaluation
  heatgate check -p sockshop -s staging --service carts

  # Strict mode
  heatgate check -p sockshop -s production --service carts --fail-on-warning`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Quality gate check failed", err)
		}
	},
}
