package schema

import "time"

// EvaluationRecord is one quality-gate evaluation of a service in a stage.
type EvaluationRecord struct {
	ID                  string            `json:"id"`
	Time                time.Time         `json:"time"`
	Project             string            `json:"project"`
	Stage               string            `json:"stage"`
	Service             string            `json:"service"`
	Score               float64           `json:"score"`
	Result              Classification    `json:"result,omitempty"`
	IndicatorResults    []IndicatorResult `json:"indicator_results"`
	ComparedEvaluations []string          `json:"compared_evaluations,omitempty"`
	SLOFileContent      string            `json:"slo_file_content,omitempty"`

	// Derived from the SLO file; nil means unset.
	ScorePassThreshold *float64 `json:"score_pass_threshold,omitempty"`
	ScoreWarnThreshold *float64 `json:"score_warn_threshold,omitempty"`
}

// IndicatorResult is the outcome of a single SLI within an evaluation.
type IndicatorResult struct {
	Metric         string         `json:"metric"`
	DisplayName    string         `json:"display_name,omitempty"`
	Value          IndicatorValue `json:"value"`
	Score          float64        `json:"score"`
	Status         Classification `json:"status"`
	KeySLI         bool           `json:"key_sli"`
	PassTargets    []Target       `json:"pass_targets,omitempty"`
	WarningTargets []Target       `json:"warning_targets,omitempty"`
}

// IndicatorValue is the measured value of an SLI.
type IndicatorValue struct {
	Value   float64 `json:"value"`
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
}

// Target is one criterion an SLI was evaluated against.
type Target struct {
	Criteria    string  `json:"criteria"`
	TargetValue float64 `json:"target_value"`
	Violated    bool    `json:"violated"`
}

// EvaluationFilter selects evaluations from a store.
type EvaluationFilter struct {
	Project string
	Stage   string
	Service string
	Before  time.Time // zero means no upper bound
	Limit   int       // zero means no limit
}

// Label returns the row label for the indicator.
func (r IndicatorResult) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Metric
}

// PassThreshold returns the score pass threshold, or 0 when unset.
func (e EvaluationRecord) PassThreshold() float64 {
	if e.ScorePassThreshold == nil {
		return 0
	}
	return *e.ScorePassThreshold
}

// WarnThreshold returns the score warning threshold, or 0 when unset.
func (e EvaluationRecord) WarnThreshold() float64 {
	if e.ScoreWarnThreshold == nil {
		return 0
	}
	return *e.ScoreWarnThreshold
}

// HasThresholds reports whether both score thresholds are set.
func (e EvaluationRecord) HasThresholds() bool {
	return e.ScorePassThreshold != nil && e.ScoreWarnThreshold != nil
}

// Matches reports whether the evaluation belongs to the filter's project, stage and service.
// Empty filter fields match anything.
func (f EvaluationFilter) Matches(e EvaluationRecord) bool {
	if f.Project != "" && f.Project != e.Project {
		return false
	}
	if f.Stage != "" && f.Stage != e.Stage {
		return false
	}
	if f.Service != "" && f.Service != e.Service {
		return false
	}
	if !f.Before.IsZero() && !e.Time.Before(f.Before) {
		return false
	}
	return true
}
