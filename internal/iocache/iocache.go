// Package iocache is for persisting evaluation records.
package iocache

import (
	"sync"

	"github.com/huangsam/heatgate/internal/contract"
)

// EvaluationStoreManager owns the evaluation store.
type EvaluationStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	evaluations  contract.EvaluationStore
}

var _ contract.StoreManager = &EvaluationStoreManager{} // Compile-time check

// NewStoreManager wraps an existing store.
func NewStoreManager(store contract.EvaluationStore) *EvaluationStoreManager {
	return &EvaluationStoreManager{evaluations: store}
}

// GetEvaluationStore returns the evaluation store.
func (mgr *EvaluationStoreManager) GetEvaluationStore() contract.EvaluationStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.evaluations
}
