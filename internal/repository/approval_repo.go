package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/pkg/model"
)

const approvalsCollection = "approvals"

// ApprovalRepository persists the approval map: approval key -> public flag.
// The map lives independently of the review collection so decisions survive
// aggregator re-fetches. Entries are only ever added or overwritten.
type ApprovalRepository struct {
	store *store.Store
}

func NewApprovalRepository(s *store.Store) *ApprovalRepository {
	return &ApprovalRepository{store: s}
}

// Map returns the stored approval map; absence is an empty map.
func (r *ApprovalRepository) Map(ctx context.Context) (map[string]bool, error) {
	data, err := r.store.Read(approvalsCollection)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	var approvals map[string]bool
	if err := json.Unmarshal(data, &approvals); err != nil {
		return map[string]bool{}, nil
	}
	if approvals == nil {
		approvals = map[string]bool{}
	}
	return approvals, nil
}

// Apply overwrites the decision for each update key. Last write wins within
// a batch; applying the same batch twice is a no-op.
func (r *ApprovalRepository) Apply(ctx context.Context, updates []model.ApprovalUpdate) (map[string]bool, error) {
	approvals, err := r.Map(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		approvals[u.Key] = u.IsPublic
	}
	data, err := json.MarshalIndent(approvals, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode approvals: %w", err)
	}
	if err := r.store.Write(approvalsCollection, data); err != nil {
		return nil, err
	}
	return approvals, nil
}
