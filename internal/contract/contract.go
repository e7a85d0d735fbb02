// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/heatgate/schema"
)

// EvaluationStore persists evaluation records.
// This allows the core logic to be tested without a real database.
type EvaluationStore interface {
	// SaveEvaluation inserts or replaces an evaluation and its indicator results.
	SaveEvaluation(ctx context.Context, ev schema.EvaluationRecord) error

	// GetEvaluation returns a single evaluation, or ErrNotFound.
	GetEvaluation(ctx context.Context, id string) (schema.EvaluationRecord, error)

	// ListEvaluations returns matching evaluations, newest first.
	ListEvaluations(ctx context.Context, filter schema.EvaluationFilter) ([]schema.EvaluationRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the evaluation store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetEvaluationStore() EvaluationStore
}

// EvaluationSource yields evaluation records from an external location.
type EvaluationSource interface {
	Fetch(ctx context.Context) ([]schema.EvaluationRecord, error)
}
