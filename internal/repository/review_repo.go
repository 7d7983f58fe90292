package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/pkg/model"
)

const reviewsCollection = "reviews"

// ReviewRepository handles record-store read/write for locally held reviews.
type ReviewRepository struct {
	store *store.Store
}

func NewReviewRepository(s *store.Store) *ReviewRepository {
	return &ReviewRepository{store: s}
}

// All returns every stored review. Records missing a channel get "Direct";
// a missing or unparseable blob is an empty collection.
func (r *ReviewRepository) All(ctx context.Context) ([]model.Review, error) {
	data, err := r.store.Read(reviewsCollection)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.Review{}, nil
		}
		return nil, err
	}
	var reviews []model.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return []model.Review{}, nil
	}
	for i := range reviews {
		if reviews[i].Channel == "" {
			reviews[i].Channel = "Direct"
		}
	}
	return reviews, nil
}

// SaveAll overwrites the local review collection.
func (r *ReviewRepository) SaveAll(ctx context.Context, reviews []model.Review) error {
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	return r.store.Write(reviewsCollection, data)
}

// SeedIfEmpty writes the demo reviews on first access to an empty store.
func (r *ReviewRepository) SeedIfEmpty(ctx context.Context) error {
	reviews, err := r.All(ctx)
	if err != nil {
		return err
	}
	if len(reviews) > 0 {
		return nil
	}
	return r.SaveAll(ctx, seedReviews())
}
