package cmd

import (
	"github.com/huangsam/heatgate/core"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/spf13/cobra"
)

// heatmapCmd renders the evaluation heatmap.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show the SLI heatmap across recent evaluations",
	Long: `Build the heatmap of recent evaluations: one column per evaluation and one row
per SLI, with the total score as the last row.

Cells are colored by result (pass, warning, fail, info). While collapsed only the
last --limit rows are shown; use --expanded to show every SLI.

Examples:
  # Heatmap of the last 50 evaluations
  heatgate heatmap --project sockshop --stage staging --service carts

  # Every SLI, as CSV
  heatgate heatmap -p sockshop -s staging --service carts --expanded --output csv

  # Export the cells to Parquet
  heatgate heatmap -p sockshop --output parquet --output-file heatmap.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHeatmap(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build heatmap", err)
		}
	},
}

// highlightCmd resolves one evaluation and its compared columns.
var highlightCmd = &cobra.Command{
	Use:   "highlight <evaluation-id>",
	Short: "Show one evaluation and the evaluations it was compared with",
	Long: `Locate an evaluation in the heatmap window and list the columns of the
evaluations it was compared against.

Examples:
  heatgate highlight 6a1f0c2e -p sockshop -s staging --service carts`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHighlight(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot resolve highlight", err)
		}
	},
}

// compareCmd compares an evaluation with its compared evaluations.
var compareCmd = &cobra.Command{
	Use:   "compare <evaluation-id>",
	Short: "Compare an evaluation's SLIs with the evaluations it was compared with",
	Long: `Compare every SLI of an evaluation with the mean of the same SLI across the
evaluations it lists as compared. Rows are sorted with regressions first.

Examples:
  heatgate compare 6a1f0c2e
  heatgate compare 6a1f0c2e --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compare evaluation", err)
		}
	},
}
