package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/pkg/model"
)

const syncRunsCollection = "sync_runs"

// SyncRunRepository manages snapshot run lifecycle records.
type SyncRunRepository struct {
	store *store.Store
}

func NewSyncRunRepository(s *store.Store) *SyncRunRepository {
	return &SyncRunRepository{store: s}
}

// Save upserts a run record by its id.
func (r *SyncRunRepository) Save(ctx context.Context, run model.SyncRun) error {
	if run.RunID == "" {
		return fmt.Errorf("runId is required")
	}
	runs, err := r.all()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range runs {
		if existing.RunID == run.RunID {
			runs[i] = run
			replaced = true
			break
		}
	}
	if !replaced {
		runs = append(runs, run)
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sync runs: %w", err)
	}
	return r.store.Write(syncRunsCollection, data)
}

// List returns up to limit runs, newest first.
func (r *SyncRunRepository) List(ctx context.Context, limit int) ([]model.SyncRun, error) {
	runs, err := r.all()
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt > runs[j].StartedAt })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *SyncRunRepository) all() ([]model.SyncRun, error) {
	data, err := r.store.Read(syncRunsCollection)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.SyncRun{}, nil
		}
		return nil, err
	}
	var runs []model.SyncRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return []model.SyncRun{}, nil
	}
	return runs, nil
}
