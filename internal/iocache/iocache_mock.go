package iocache

import (
	"context"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetEvaluationStore implements the StoreManager interface.
func (m *MockStoreManager) GetEvaluationStore() contract.EvaluationStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.EvaluationStore)
	return store
}

// MockEvaluationStore is a mock implementation of EvaluationStore for testing.
type MockEvaluationStore struct {
	mock.Mock
}

var _ contract.EvaluationStore = &MockEvaluationStore{} // Compile-time check

// SaveEvaluation implements the EvaluationStore interface.
func (m *MockEvaluationStore) SaveEvaluation(ctx context.Context, ev schema.EvaluationRecord) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// GetEvaluation implements the EvaluationStore interface.
func (m *MockEvaluationStore) GetEvaluation(ctx context.Context, id string) (schema.EvaluationRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.EvaluationRecord), args.Error(1)
}

// ListEvaluations implements the EvaluationStore interface.
func (m *MockEvaluationStore) ListEvaluations(ctx context.Context, filter schema.EvaluationFilter) ([]schema.EvaluationRecord, error) {
	args := m.Called(ctx, filter)
	evs, _ := args.Get(0).([]schema.EvaluationRecord)
	return evs, args.Error(1)
}

// GetStatus implements the EvaluationStore interface.
func (m *MockEvaluationStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the EvaluationStore interface.
func (m *MockEvaluationStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
