package cmd

import (
	"fmt"

	"github.com/huangsam/heatgate/core"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/source"
	"github.com/spf13/cobra"
)

// importCmd loads evaluations into the store.
var importCmd = &cobra.Command{
	Use:   "import <location>",
	Short: "Import evaluations from a file, S3 or GCS",
	Long: `Read evaluation records and save them to the configured store.

The location is a local path, file://path, s3://bucket/key or gs://bucket/object.
The payload is a JSON array of evaluations or an object with an "evaluations" array.
Evaluations without an id get a generated one, and score thresholds are read from
their SLO file when present.

Examples:
  heatgate import ./evaluations.json
  heatgate import s3://quality-gates/sockshop/evals.json --s3-region us-east-1
  HEATGATE_S3_ENDPOINT=http://localhost:9000 heatgate import s3://gates/evals.json
  heatgate import gs://quality-gates/sockshop/evals.json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The location is not an evaluation id
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		src, err := source.Open(rootCtx, args[0], cfg.S3)
		if err != nil {
			contract.LogFatal("Cannot open source", err)
		}
		n, err := core.ExecuteImport(rootCtx, storeManager, src)
		if err != nil {
			contract.LogFatal("Import failed", err)
		}
		fmt.Printf("Imported %d evaluations from %s\n", n, src.Location())
	},
}
