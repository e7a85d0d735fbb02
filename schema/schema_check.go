package schema

import "time"

// CheckResult holds the results of a quality-gate check.
type CheckResult struct {
	Passed            bool             `json:"passed"`
	EvaluationID      string           `json:"evaluation_id"`
	Project           string           `json:"project"`
	Stage             string           `json:"stage"`
	Service           string           `json:"service"`
	Time              time.Time        `json:"time"`
	Score             float64          `json:"score"`
	Result            Classification   `json:"result"`
	PassThreshold     float64          `json:"pass_threshold"`
	WarnThreshold     float64          `json:"warn_threshold"`
	FailOnWarning     bool             `json:"fail_on_warning"`
	TotalIndicators   int              `json:"total_indicators"`
	FailedIndicators  []CheckIndicator `json:"failed_indicators,omitempty"`
	WarningIndicators []CheckIndicator `json:"warning_indicators,omitempty"`
}

// CheckIndicator represents an indicator that did not pass.
type CheckIndicator struct {
	Row     string         `json:"row"`
	Value   float64        `json:"value"`
	Score   float64        `json:"score"`
	Status  Classification `json:"status"`
	KeySLI  bool           `json:"key_sli"`
	Targets []Target       `json:"targets,omitempty"`
}
