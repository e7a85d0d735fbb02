package schema

import "time"

// StoreStatus represents the status of the evaluation store.
type StoreStatus struct {
	Backend              string           `json:"backend"`
	Connected            bool             `json:"connected"`
	TotalEvaluations     int              `json:"total_evaluations"`
	TotalIndicators      int              `json:"total_indicators"`
	LastEvaluationTime   time.Time        `json:"last_evaluation_time"`
	OldestEvaluationTime time.Time        `json:"oldest_evaluation_time"`
	TableSizes           map[string]int64 `json:"table_sizes"`
}
