package core

import (
	"context"
	"fmt"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	cfg        *contract.Config
	mgr        contract.StoreManager
	ctx        context.Context
	evaluation schema.EvaluationRecord
	failed     []schema.CheckIndicator
	warnings   []schema.CheckIndicator
	result     *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg: cfg,
		mgr: mgr,
		ctx: ctx,
	}
}

// LoadEvaluation fetches the newest evaluation matching the config.
func (b *CheckResultBuilder) LoadEvaluation() (*CheckResultBuilder, error) {
	store, err := evaluationStore(b.mgr)
	if err != nil {
		return nil, err
	}
	filter := b.cfg.Filter()
	filter.Limit = 1
	evs, err := store.ListEvaluations(b.ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	if len(evs) == 0 {
		return nil, fmt.Errorf("no evaluations found for project=%q stage=%q service=%q. Run 'heatgate import' first",
			b.cfg.Project, b.cfg.Stage, b.cfg.Service)
	}
	b.evaluation = evs[0]
	return b, nil
}

// ClassifyIndicators collects the indicators that failed or warned.
func (b *CheckResultBuilder) ClassifyIndicators() *CheckResultBuilder {
	b.failed = []schema.CheckIndicator{}
	b.warnings = []schema.CheckIndicator{}
	for _, ind := range b.evaluation.IndicatorResults {
		switch ind.Status {
		case schema.FailResult:
			b.failed = append(b.failed, checkIndicator(ind))
		case schema.WarningResult:
			b.warnings = append(b.warnings, checkIndicator(ind))
		}
	}
	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	ev := b.evaluation
	result := ev.Result
	if _, ok := schema.ValidClassifications[result]; !ok {
		result = schema.InfoResult
	}
	passed := result != schema.FailResult && (!b.cfg.FailOnWarning || result != schema.WarningResult)

	b.result = &schema.CheckResult{
		Passed:            passed,
		EvaluationID:      ev.ID,
		Project:           ev.Project,
		Stage:             ev.Stage,
		Service:           ev.Service,
		Time:              ev.Time,
		Score:             ev.Score,
		Result:            result,
		PassThreshold:     ev.PassThreshold(),
		WarnThreshold:     ev.WarnThreshold(),
		FailOnWarning:     b.cfg.FailOnWarning,
		TotalIndicators:   len(ev.IndicatorResults),
		FailedIndicators:  b.failed,
		WarningIndicators: b.warnings,
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

// checkIndicator keeps the violated targets, or all pass targets when none are flagged.
func checkIndicator(ind schema.IndicatorResult) schema.CheckIndicator {
	var targets []schema.Target
	for _, t := range append(append([]schema.Target{}, ind.PassTargets...), ind.WarningTargets...) {
		if t.Violated {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		targets = ind.PassTargets
	}
	return schema.CheckIndicator{
		Row:     ind.Label(),
		Value:   ind.Value.Value,
		Score:   ind.Score,
		Status:  ind.Status,
		KeySLI:  ind.KeySLI,
		Targets: targets,
	}
}
