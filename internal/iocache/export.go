package iocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/parquet"
	"github.com/huangsam/heatgate/schema"
)

// ExecuteStoreExport writes every stored evaluation to a pair of Parquet files
// named after outputFile.
func ExecuteStoreExport(ctx context.Context, store contract.EvaluationStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalEvaluations == 0 {
		return errors.New("no evaluations found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total evaluations: %d\n", status.TotalEvaluations)
	fmt.Printf("Total indicator results: %d\n", status.TotalIndicators)

	evs, err := store.ListEvaluations(ctx, schema.EvaluationFilter{})
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluations: %w", err)
	}
	evaluations, indicators := parquet.ConvertEvaluations(evs)

	evaluationsFile := outputFile + ".evaluations.parquet"
	if err := parquet.WriteFile(evaluations, evaluationsFile); err != nil {
		return fmt.Errorf("failed to write evaluations: %w", err)
	}
	fmt.Printf("Exported %d evaluations to: %s\n", len(evaluations), evaluationsFile)

	indicatorsFile := outputFile + ".indicator_results.parquet"
	if err := parquet.WriteFile(indicators, indicatorsFile); err != nil {
		return fmt.Errorf("failed to write indicator results: %w", err)
	}
	fmt.Printf("Exported %d indicator results to: %s\n", len(indicators), indicatorsFile)

	return nil
}
