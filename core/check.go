package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

// GetCheckResult evaluates the quality gate without printing or exiting.
func GetCheckResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.CheckResult, error) {
	builder := NewCheckResultBuilder(ctx, cfg, mgr)
	if _, err := builder.LoadEvaluation(); err != nil {
		return nil, err
	}
	return builder.ClassifyIndicators().BuildResult().GetResult(), nil
}

// ExecuteCheck runs the check command for CI/CD gating.
// It inspects the newest evaluation and exits non-zero when the gate failed.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	result, err := GetCheckResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	printCheckResult(os.Stdout, result, cfg, time.Since(start))

	if !result.Passed {
		fmt.Printf("Quality gate %s for evaluation %s\n", result.Result, result.EvaluationID)
		os.Exit(1)
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	printCheckHeader(w, result, cfg, duration)
	if result.Passed {
		printCheckSuccess(w, result, cfg)
		return
	}
	printCheckFailure(w, result, cfg)
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Quality Gate Results:")

	labels := []string{"Project:", "Stage:", "Service:", "Evaluation:", "Thresholds:"}
	values := []any{
		result.Project,
		result.Stage,
		result.Service,
		fmt.Sprintf("%s at %s", result.EvaluationID, result.Time.Format(contract.DateTimeFormat)),
		fmt.Sprintf("pass=%.*f, warning=%.*f", cfg.Precision, result.PassThreshold, cfg.Precision, result.WarnThreshold),
	}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Checked %d indicators in %v\n\n", result.TotalIndicators, duration)
}

func resultLabel(result schema.Classification, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(result)
	}
	return contract.GetPlainLabel(result)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult, cfg *contract.Config) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "✅ "
	}
	_, _ = fmt.Fprintf(w, "%sQuality gate passed: %s with score %.*f\n", prefix, resultLabel(result.Result, cfg), cfg.Precision, result.Score)
	if len(result.WarningIndicators) > 0 {
		_, _ = fmt.Fprintln(w)
		printIndicators(w, "Warnings", result.WarningIndicators, cfg)
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult, cfg *contract.Config) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "❌ "
	}
	_, _ = fmt.Fprintf(w, "%sQuality gate failed: %s with score %.*f\n\n", prefix, resultLabel(result.Result, cfg), cfg.Precision, result.Score)
	printIndicators(w, "Failed", result.FailedIndicators, cfg)
	printIndicators(w, "Warnings", result.WarningIndicators, cfg)
}

// printIndicators lists up to five indicators with a "+N more" tail.
func printIndicators(w io.Writer, title string, indicators []schema.CheckIndicator, cfg *contract.Config) {
	if len(indicators) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s (%d):\n", title, len(indicators))

	const maxToShow = 5
	for i, ind := range indicators {
		if i == maxToShow {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(indicators)-maxToShow)
			break
		}
		key := ""
		if ind.KeySLI {
			key = " [key]"
		}
		_, _ = fmt.Fprintf(w, "  - %s%s: value=%.*f score=%.*f", ind.Row, key, cfg.Precision, ind.Value, cfg.Precision, ind.Score)
		for _, t := range ind.Targets {
			_, _ = fmt.Fprintf(w, " %s", t.Criteria)
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w)
}
