package reviews

import (
	"context"

	"go.uber.org/zap"

	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	"github.com/flexliving/reviews-api/internal/repository"
	"github.com/flexliving/reviews-api/pkg/model"
)

// Source abstracts the aggregator reviews fetch for testability.
type Source interface {
	FetchReviews(ctx context.Context, q hostaway.ReviewQuery) ([]map[string]any, error)
}

// Service orchestrates review reads and approval writes: aggregator first
// when credentials are configured, transparent fallback to the record store.
type Service struct {
	source      Source
	useUpstream bool
	reviews     *repository.ReviewRepository
	approvals   *repository.ApprovalRepository
	logger      *zap.Logger
}

func NewService(source Source, useUpstream bool, reviews *repository.ReviewRepository, approvals *repository.ApprovalRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:      source,
		useUpstream: useUpstream && source != nil,
		reviews:     reviews,
		approvals:   approvals,
		logger:      logger,
	}
}

// List returns reviews with the approval overlay applied. The aggregator path
// is attempted once when configured; any failure falls back to the local
// store, which is lazily seeded with demo data on first access.
func (s *Service) List(ctx context.Context, q hostaway.ReviewQuery) ([]model.Review, error) {
	approvals, err := s.approvals.Map(ctx)
	if err != nil {
		s.logger.Warn("read approval map failed, defaulting to deny-all", zap.Error(err))
		approvals = map[string]bool{}
	}

	if s.useUpstream {
		raws, err := s.source.FetchReviews(ctx, q)
		if err == nil {
			normalized := make([]model.Review, len(raws))
			for i, raw := range raws {
				normalized[i] = Normalize(raw)
			}
			return ApplyOverlay(normalized, approvals), nil
		}
		s.logger.Warn("hostaway reviews fetch failed, falling back to local store", zap.Error(err))
	}

	if err := s.reviews.SeedIfEmpty(ctx); err != nil {
		return nil, err
	}
	local, err := s.reviews.All(ctx)
	if err != nil {
		return nil, err
	}

	if q.ListingID != "" {
		filtered := local[:0]
		for _, r := range local {
			if r.ListingID == q.ListingID {
				filtered = append(filtered, r)
			}
		}
		local = filtered
	}

	// Local records carry their own stored flag; an explicit approval
	// decision overrides it, absence leaves it untouched.
	for i, r := range local {
		if decided, ok := approvals[r.ApprovalKey]; ok {
			local[i].IsPublic = decided
		}
	}
	return local, nil
}

// UpdateApprovals parses an approval-update body (any of the accepted
// shapes) and applies it to the approval map. No partial application: the
// whole batch is rejected when the payload is structurally unusable.
func (s *Service) UpdateApprovals(ctx context.Context, body []byte) ([]model.ApprovalUpdate, error) {
	updates, err := ParseApprovalUpdates(body)
	if err != nil {
		return nil, err
	}
	if _, err := s.approvals.Apply(ctx, updates); err != nil {
		return nil, err
	}
	s.logger.Info("approval decisions applied", zap.Int("count", len(updates)))
	return updates, nil
}

// SaveLocal overwrites the locally stored review collection (admin bulk
// save). Missing approval keys are derived before persisting.
func (s *Service) SaveLocal(ctx context.Context, revs []model.Review) error {
	for i, r := range revs {
		if r.ApprovalKey == "" {
			revs[i].ApprovalKey = ApprovalKey(r.ID, r.ListingID)
		}
	}
	return s.reviews.SaveAll(ctx, revs)
}
