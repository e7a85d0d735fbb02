// Package cmd defines the command-line interface for heatgate.
package cmd

import (
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project of the evaluations")
	rootCmd.PersistentFlags().StringP("stage", "s", "", "Stage of the evaluations")
	rootCmd.PersistentFlags().String("service", "", "Service of the evaluations")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultRowLimit, "Number of heatmap rows shown while collapsed")
	rootCmd.PersistentFlags().Int("history-limit", contract.DefaultHistoryLimit, "Number of most recent evaluations to load")
	rootCmd.PersistentFlags().String("before", "", "Only use evaluations before this time (RFC3339 or 'N days ago')")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("time-layout", contract.DefaultTimeLayout, "Go time layout used for column labels")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored cells in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in check output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of heatmapCmd to Viper
	heatmapCmd.Flags().Bool("expanded", false, "Show every row instead of the collapsed limit")
	heatmapCmd.Flags().String("select", "", "Evaluation id to highlight")
	if err := viper.BindPFlags(heatmapCmd.Flags()); err != nil {
		contract.LogFatal("Error binding heatmap flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Bool("fail-on-warning", false, "Fail the gate when the newest evaluation is a warning")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of importCmd to Viper
	importCmd.Flags().String("s3-endpoint", "", "Custom S3 endpoint (e.g., MinIO)")
	importCmd.Flags().String("s3-region", "", "S3 region")
	importCmd.Flags().String("s3-access-key", "", "S3 access key (prefer HEATGATE_S3_ACCESS_KEY)")
	importCmd.Flags().String("s3-secret-key", "", "S3 secret key (prefer HEATGATE_S3_SECRET_KEY)")
	if err := viper.BindPFlags(importCmd.Flags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address the API listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
