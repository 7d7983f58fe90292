package listings

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	"github.com/flexliving/reviews-api/internal/repository"
	"github.com/flexliving/reviews-api/pkg/model"
)

// ErrNotFound signals the listing is absent from both sources.
var ErrNotFound = repository.ErrNotFound

// ErrMissingFields rejects a create request without the required fields.
var ErrMissingFields = errors.New("listings: name, category and channel are required")

// Source abstracts the aggregator listing fetches for testability.
type Source interface {
	FetchListings(ctx context.Context, q hostaway.ListingQuery) ([]map[string]any, error)
	FetchListingByID(ctx context.Context, id string) (map[string]any, error)
	FetchAmenityMap(ctx context.Context) (map[string]string, error)
}

// Service serves listings aggregator-first with local fallback, and owns the
// local CRUD surface used by the admin dashboard.
type Service struct {
	source      Source
	useUpstream bool
	listings    *repository.ListingRepository
	logger      *zap.Logger
}

func NewService(source Source, useUpstream bool, listings *repository.ListingRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:      source,
		useUpstream: useUpstream && source != nil,
		listings:    listings,
		logger:      logger,
	}
}

// List returns all listings: normalized aggregator records when available,
// else the (lazily seeded) local collection.
func (s *Service) List(ctx context.Context, q hostaway.ListingQuery) ([]model.Listing, error) {
	if s.useUpstream {
		raws, err := s.source.FetchListings(ctx, q)
		if err == nil {
			return s.normalizeAll(ctx, raws), nil
		}
		s.logger.Warn("hostaway listings fetch failed, falling back to local store", zap.Error(err))
	}
	return s.local(ctx)
}

// Get returns one listing by id. An aggregator miss or failure falls through
// to the local store; absence from both is ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (model.Listing, error) {
	if s.useUpstream {
		raw, err := s.source.FetchListingByID(ctx, id)
		if err == nil && raw != nil {
			return Normalize(raw, s.amenityMap(ctx)), nil
		}
		if err != nil && !errors.Is(err, hostaway.ErrNotFound) {
			s.logger.Warn("hostaway listing fetch failed, falling back to local store",
				zap.String("id", id), zap.Error(err))
		}
	}

	if err := s.listings.SeedIfEmpty(ctx); err != nil {
		return model.Listing{}, err
	}
	return s.listings.Get(ctx, id)
}

// CreateInput carries the admin create-listing fields.
type CreateInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Channel  string `json:"channel"`
}

// Create adds a local listing with the next free id.
func (s *Service) Create(ctx context.Context, input CreateInput) (model.Listing, error) {
	if input.Name == "" || input.Category == "" || input.Channel == "" {
		return model.Listing{}, ErrMissingFields
	}
	if err := s.listings.SeedIfEmpty(ctx); err != nil {
		return model.Listing{}, err
	}
	return s.listings.Create(ctx, model.Listing{
		Name:     input.Name,
		Category: input.Category,
		Channel:  input.Channel,
	})
}

// Update merges a partial patch into a local listing.
func (s *Service) Update(ctx context.Context, id string, patch map[string]any) (model.Listing, error) {
	return s.listings.Update(ctx, id, patch)
}

// Delete removes a local listing and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (model.Listing, error) {
	return s.listings.Delete(ctx, id)
}

func (s *Service) local(ctx context.Context) ([]model.Listing, error) {
	if err := s.listings.SeedIfEmpty(ctx); err != nil {
		return nil, err
	}
	return s.listings.All(ctx)
}

func (s *Service) normalizeAll(ctx context.Context, raws []map[string]any) []model.Listing {
	amenityMap := s.amenityMap(ctx)
	normalized := make([]model.Listing, len(raws))
	for i, raw := range raws {
		normalized[i] = Normalize(raw, amenityMap)
	}
	return normalized
}

// amenityMap is best-effort: labels degrade to raw amenity ids when the
// lookup cannot be fetched.
func (s *Service) amenityMap(ctx context.Context) map[string]string {
	amenities, err := s.source.FetchAmenityMap(ctx)
	if err != nil {
		s.logger.Warn("hostaway amenity map fetch failed, using raw amenity ids", zap.Error(err))
		return nil
	}
	return amenities
}
