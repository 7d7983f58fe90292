package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/flexliving/reviews-api/internal/platform/config"
	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/internal/repository"
)

// Seeds the data directory with the demo listings and reviews, so a fresh
// checkout can serve the dashboard without aggregator credentials.
func main() {
	ctx := context.Background()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	recordStore := store.New(cfg.DataDir)
	if err := recordStore.EnsureDir(); err != nil {
		log.Fatalf("data dir init: %v", err)
	}

	listingRepo := repository.NewListingRepository(recordStore)
	reviewRepo := repository.NewReviewRepository(recordStore)

	if err := listingRepo.SeedIfEmpty(ctx); err != nil {
		log.Fatalf("seed listings: %v", err)
	}
	if err := reviewRepo.SeedIfEmpty(ctx); err != nil {
		log.Fatalf("seed reviews: %v", err)
	}

	listings, err := listingRepo.All(ctx)
	if err != nil {
		log.Fatalf("read listings: %v", err)
	}
	reviews, err := reviewRepo.All(ctx)
	if err != nil {
		log.Fatalf("read reviews: %v", err)
	}

	fmt.Printf("data dir: %s\n", cfg.DataDir)
	fmt.Printf("listings: %d\n", len(listings))
	fmt.Printf("reviews: %d\n", len(reviews))
}
