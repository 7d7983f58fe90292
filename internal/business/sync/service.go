package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flexliving/reviews-api/internal/business/listings"
	"github.com/flexliving/reviews-api/internal/business/reviews"
	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	"github.com/flexliving/reviews-api/internal/repository"
	"github.com/flexliving/reviews-api/pkg/model"
)

// ErrUpstreamDisabled rejects a snapshot run when no aggregator credentials
// are configured.
var ErrUpstreamDisabled = errors.New("sync: aggregator credentials not configured")

// Source is the aggregator surface a snapshot run reads from.
type Source interface {
	FetchReviews(ctx context.Context, q hostaway.ReviewQuery) ([]map[string]any, error)
	FetchListings(ctx context.Context, q hostaway.ListingQuery) ([]map[string]any, error)
	FetchAmenityMap(ctx context.Context) (map[string]string, error)
}

// Service snapshots aggregator data into the record store so the local
// fallback path serves recent data when the aggregator later degrades.
// The approval map is never touched by a run.
type Service struct {
	source      Source
	useUpstream bool
	listings    *repository.ListingRepository
	reviews     *repository.ReviewRepository
	runs        *repository.SyncRunRepository
	logger      *zap.Logger
}

func NewService(source Source, useUpstream bool, listingRepo *repository.ListingRepository, reviewRepo *repository.ReviewRepository, runs *repository.SyncRunRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:      source,
		useUpstream: useUpstream && source != nil,
		listings:    listingRepo,
		reviews:     reviewRepo,
		runs:        runs,
		logger:      logger,
	}
}

// Run executes one snapshot synchronously and returns the finished run
// record. Volumes are small enough that a background job is not worth its
// moving parts.
func (s *Service) Run(ctx context.Context) (model.SyncRun, error) {
	if !s.useUpstream {
		return model.SyncRun{}, ErrUpstreamDisabled
	}

	run := model.SyncRun{
		RunID:     uuid.NewString(),
		Status:    "running",
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return model.SyncRun{}, err
	}
	s.logger.Info("sync run started", zap.String("runId", run.RunID))

	run = s.execute(ctx, run)
	run.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.runs.Save(ctx, run); err != nil {
		return run, err
	}
	s.logger.Info("sync run finished",
		zap.String("runId", run.RunID),
		zap.String("status", run.Status),
		zap.Int("listings", run.Stats.Listings),
		zap.Int("reviews", run.Stats.Reviews))
	return run, nil
}

func (s *Service) execute(ctx context.Context, run model.SyncRun) model.SyncRun {
	amenityMap, err := s.source.FetchAmenityMap(ctx)
	if err != nil {
		s.logger.Warn("amenity map unavailable for sync run", zap.Error(err))
		amenityMap = nil
	}

	rawListings, err := s.source.FetchListings(ctx, hostaway.ListingQuery{})
	if err != nil {
		return failed(run, "fetch listings: "+err.Error())
	}
	normalizedListings := make([]model.Listing, len(rawListings))
	for i, raw := range rawListings {
		normalizedListings[i] = listings.Normalize(raw, amenityMap)
	}
	if err := s.listings.ReplaceAll(ctx, normalizedListings); err != nil {
		return failed(run, "store listings: "+err.Error())
	}
	run.Stats.Listings = len(normalizedListings)

	rawReviews, err := s.source.FetchReviews(ctx, hostaway.ReviewQuery{})
	if err != nil {
		return failed(run, "fetch reviews: "+err.Error())
	}
	normalizedReviews := make([]model.Review, len(rawReviews))
	for i, raw := range rawReviews {
		// Stored private; only an approval overlay decision makes a synced
		// review public.
		normalizedReviews[i] = reviews.Normalize(raw)
	}
	if err := s.reviews.SaveAll(ctx, normalizedReviews); err != nil {
		return failed(run, "store reviews: "+err.Error())
	}
	run.Stats.Reviews = len(normalizedReviews)

	run.Status = "success"
	return run
}

// Runs lists recent snapshot runs, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]model.SyncRun, error) {
	return s.runs.List(ctx, limit)
}

func failed(run model.SyncRun, reason string) model.SyncRun {
	run.Status = "failed"
	run.Error = reason
	run.Stats.Failed++
	return run
}
