package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
)

var errNoStore = errors.New("evaluation store is not initialized")

func evaluationStore(mgr contract.StoreManager) (contract.EvaluationStore, error) {
	if mgr == nil {
		return nil, errNoStore
	}
	store := mgr.GetEvaluationStore()
	if store == nil {
		return nil, errNoStore
	}
	return store, nil
}

// loadEvaluations returns the evaluation window selected by the config.
func loadEvaluations(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.EvaluationRecord, error) {
	store, err := evaluationStore(mgr)
	if err != nil {
		return nil, err
	}
	evs, err := store.ListEvaluations(ctx, cfg.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	return evs, nil
}

// resolveCompared looks up the compared evaluations of ev in history.
// Identifiers that are not in history are counted as missing.
func resolveCompared(ev schema.EvaluationRecord, history []schema.EvaluationRecord) ([]schema.EvaluationRecord, int) {
	byID := make(map[string]schema.EvaluationRecord, len(history))
	for _, h := range history {
		byID[h.ID] = h
	}
	var compared []schema.EvaluationRecord
	missing := 0
	for _, id := range ev.ComparedEvaluations {
		if h, ok := byID[id]; ok {
			compared = append(compared, h)
			continue
		}
		missing++
	}
	return compared, missing
}
