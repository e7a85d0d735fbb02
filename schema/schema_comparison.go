package schema

import "time"

// ComparisonDetail holds one indicator of the selected evaluation and its movement.
type ComparisonDetail struct {
	Row           string         `json:"row"`            // Row label of the indicator
	Metric        string         `json:"metric"`         // Underlying metric name
	Value         float64        `json:"value"`          // Value in the selected evaluation
	ComparedValue float64        `json:"compared_value"` // Mean value across compared evaluations
	Delta         float64        `json:"delta"`          // Value - ComparedValue
	DeltaPercent  float64        `json:"delta_percent"`  // Delta relative to ComparedValue, 0 when it is 0
	Score         float64        `json:"score"`          // Indicator score in the selected evaluation
	ComparedScore float64        `json:"compared_score"` // Mean indicator score across compared evaluations
	Samples       int            `json:"samples"`        // Number of compared evaluations carrying this metric
	Result        Classification `json:"result"`         // Indicator status in the selected evaluation
	Status        Status         `json:"status"`         // Movement based on the indicator score
	KeySLI        bool           `json:"key_sli"`
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	ComparedEvaluations int     `json:"compared_evaluations"`
	MissingEvaluations  int     `json:"missing_evaluations"`
	TotalImproved       int     `json:"total_improved"`
	TotalRegressed      int     `json:"total_regressed"`
	TotalUnchanged      int     `json:"total_unchanged"`
	TotalMissing        int     `json:"total_missing"`
	ComparedScore       float64 `json:"compared_score"`
	NetScoreDelta       float64 `json:"net_score_delta"`
}

// ComparisonResult holds the comparison details and summary for one evaluation.
type ComparisonResult struct {
	EvaluationID string             `json:"evaluation_id"`
	Time         time.Time          `json:"time"`
	Score        float64            `json:"score"`
	Result       Classification     `json:"result"`
	ComparedIDs  []string           `json:"compared_ids"`
	Details      []ComparisonDetail `json:"details"`
	Summary      ComparisonSummary  `json:"summary"`
}
