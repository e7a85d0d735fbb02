package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/iocache"
	"github.com/huangsam/heatgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeBackend reads and validates the backend settings without the full shared setup.
func storeBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.DatabaseBackend(viper.GetString("db-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	backend, connStr, err := storeBackend()
	if err != nil {
		return err
	}
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	cfg.Backend = backend
	cfg.DBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup validates the backend but does NOT open the store,
// so migrations can run on a fresh database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeBackend()
	if err != nil {
		return err
	}
	cfg.Backend = backend
	cfg.DBConnect = connStr
	return nil
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by heatmap commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the evaluation store",
	Long: `Manage the database that holds imported evaluations.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is kept)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored evaluations
  export  - Write all evaluations to Parquet files
  migrate - Run schema migrations

Examples:
  heatgate store status
  HEATGATE_DB_BACKEND=postgresql HEATGATE_DB_CONNECT="host=localhost dbname=heatgate" heatgate store migrate`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store statistics and connection details",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetEvaluationStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored evaluations",
	Long: `Delete every stored evaluation from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the evaluation tables`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.Backend, iocache.GetDBFilePath(), cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports the store to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all evaluations to Parquet files",
	Long: `Write every stored evaluation to <output-file>.evaluations.parquet and its
indicator results to <output-file>.indicator_results.parquet.

Examples:
  heatgate store export --output-file gates`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetEvaluationStore()
		if store == nil {
			contract.LogFatal("Failed to export store", fmt.Errorf("store is not initialized"))
		}
		if err := iocache.ExecuteStoreExport(rootCtx, store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run store schema migrations",
	Long: `Migrate the store schema to the latest version, a specific version, or
roll back entirely with --target-version 0.`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateStore(cfg.Backend, cfg.DBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
