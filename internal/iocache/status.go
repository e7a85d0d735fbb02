package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/heatgate/schema"
)

// PrintStoreStatus prints evaluation store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Evaluations: %d\n", status.TotalEvaluations)
	_, _ = fmt.Fprintf(w, "Total Indicator Results: %d\n", status.TotalIndicators)
	if status.TotalEvaluations > 0 {
		_, _ = fmt.Fprintf(w, "Last Evaluation: %s\n", status.LastEvaluationTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Evaluation: %s\n", status.OldestEvaluationTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
