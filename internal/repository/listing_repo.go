package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/pkg/model"
)

// ErrNotFound signals the requested record is absent from the store.
var ErrNotFound = errors.New("repository: not found")

const listingsCollection = "properties"

// ListingRepository handles record-store read/write for property listings.
type ListingRepository struct {
	store *store.Store
}

func NewListingRepository(s *store.Store) *ListingRepository {
	return &ListingRepository{store: s}
}

// All returns every stored listing. A missing or unparseable blob is treated
// as an empty collection so the store self-heals on first run.
func (r *ListingRepository) All(ctx context.Context) ([]model.Listing, error) {
	data, err := r.store.Read(listingsCollection)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.Listing{}, nil
		}
		return nil, err
	}
	var listings []model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return []model.Listing{}, nil
	}
	return listings, nil
}

// Get returns one listing by id, or ErrNotFound.
func (r *ListingRepository) Get(ctx context.Context, id string) (model.Listing, error) {
	listings, err := r.All(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	for _, l := range listings {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Listing{}, ErrNotFound
}

// Create appends a listing with the next free numeric id (1 + max existing,
// or 1 for an empty collection).
func (r *ListingRepository) Create(ctx context.Context, listing model.Listing) (model.Listing, error) {
	listings, err := r.All(ctx)
	if err != nil {
		return model.Listing{}, err
	}

	maxID := 0
	for _, l := range listings {
		if n, err := strconv.Atoi(l.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	listing.ID = strconv.Itoa(maxID + 1)
	listing.IsActive = true
	if listing.CreatedAt == "" {
		listing.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := r.writeAll(append(listings, listing)); err != nil {
		return model.Listing{}, err
	}
	return listing, nil
}

// Update merges a partial patch into an existing listing. The id is immutable.
func (r *ListingRepository) Update(ctx context.Context, id string, patch map[string]any) (model.Listing, error) {
	listings, err := r.All(ctx)
	if err != nil {
		return model.Listing{}, err
	}

	for i, l := range listings {
		if l.ID != id {
			continue
		}
		merged, err := mergeListing(l, patch)
		if err != nil {
			return model.Listing{}, err
		}
		merged.ID = id
		listings[i] = merged
		if err := r.writeAll(listings); err != nil {
			return model.Listing{}, err
		}
		return merged, nil
	}
	return model.Listing{}, ErrNotFound
}

// Delete removes a listing and returns the removed record.
func (r *ListingRepository) Delete(ctx context.Context, id string) (model.Listing, error) {
	listings, err := r.All(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	for i, l := range listings {
		if l.ID != id {
			continue
		}
		removed := l
		listings = append(listings[:i], listings[i+1:]...)
		if err := r.writeAll(listings); err != nil {
			return model.Listing{}, err
		}
		return removed, nil
	}
	return model.Listing{}, ErrNotFound
}

// ReplaceAll overwrites the whole collection, used by snapshot sync runs.
func (r *ListingRepository) ReplaceAll(ctx context.Context, listings []model.Listing) error {
	return r.writeAll(listings)
}

// SeedIfEmpty writes the demo listings on first access to an empty store.
func (r *ListingRepository) SeedIfEmpty(ctx context.Context) error {
	listings, err := r.All(ctx)
	if err != nil {
		return err
	}
	if len(listings) > 0 {
		return nil
	}
	return r.writeAll(seedListings())
}

func (r *ListingRepository) writeAll(listings []model.Listing) error {
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode listings: %w", err)
	}
	return r.store.Write(listingsCollection, data)
}

// mergeListing applies a JSON patch object over the serialized listing, so
// only the fields present in the patch change.
func mergeListing(current model.Listing, patch map[string]any) (model.Listing, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return model.Listing{}, fmt.Errorf("encode listing %s: %w", current.ID, err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return model.Listing{}, fmt.Errorf("decode listing %s: %w", current.ID, err)
	}
	for k, v := range patch {
		asMap[k] = v
	}
	mergedRaw, err := json.Marshal(asMap)
	if err != nil {
		return model.Listing{}, fmt.Errorf("encode merged listing %s: %w", current.ID, err)
	}
	var merged model.Listing
	if err := json.Unmarshal(mergedRaw, &merged); err != nil {
		return model.Listing{}, fmt.Errorf("apply patch to listing %s: %w", current.ID, err)
	}
	return merged, nil
}
