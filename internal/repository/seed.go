package repository

import (
	"time"

	"github.com/flexliving/reviews-api/pkg/model"
)

// Demo data written on first access when the store is empty and no
// aggregator credentials are configured.

func seedListings() []model.Listing {
	now := time.Now().UTC().Format(time.RFC3339)
	return []model.Listing{
		{
			ID:        "1",
			Name:      "Beautiful Pimlico Flat",
			Category:  "Apartment",
			Channel:   "Airbnb",
			Guests:    2,
			Bedrooms:  1,
			Bathrooms: 1,
			City:      "London",
			Country:   "United Kingdom",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Cozy Westminster Studio",
			Category:  "Studio",
			Channel:   "Booking.com",
			Guests:    1,
			Bathrooms: 1,
			City:      "London",
			Country:   "United Kingdom",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        "3",
			Name:      "Luxury Kensington Suite",
			Category:  "Suite",
			Channel:   "Direct",
			Guests:    3,
			Bedrooms:  2,
			Bathrooms: 2,
			City:      "London",
			Country:   "United Kingdom",
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        "4",
			Name:      "Modern Chelsea Apartment",
			Category:  "Apartment",
			Channel:   "Direct",
			Guests:    4,
			Bedrooms:  2,
			Bathrooms: 1,
			City:      "London",
			Country:   "United Kingdom",
			IsActive:  true,
			CreatedAt: now,
		},
	}
}

func seedReviews() []model.Review {
	reviews := []model.Review{
		{ID: "1", Property: "Beautiful Pimlico Flat", Guest: "Sarah Johnson", Rating: 5, Date: "2025-09-10", Comment: "Amazing stay! The apartment was spotless and exactly as described.", IsPublic: true, Category: "Apartment", Channel: "Airbnb"},
		{ID: "2", Property: "Beautiful Pimlico Flat", Guest: "Liam O'Connor", Rating: 4, Date: "2025-08-28", Comment: "Great location near Victoria. A bit warm in the afternoons but otherwise perfect.", IsPublic: true, Category: "Apartment", Channel: "Direct"},
		{ID: "3", Property: "Beautiful Pimlico Flat", Guest: "Isabella Rossi", Rating: 5, Date: "2025-08-12", Comment: "Super clean and very cozy. Hosts were responsive.", IsPublic: true, Category: "Apartment", Channel: "Booking.com"},
		{ID: "4", Property: "Beautiful Pimlico Flat", Guest: "Noah Williams", Rating: 4, Date: "2025-07-21", Comment: "Exactly as pictured. Street can be a bit noisy at night.", IsPublic: false, Category: "Apartment", Channel: "Airbnb"},
		{ID: "5", Property: "Beautiful Pimlico Flat", Guest: "Mia Schneider", Rating: 5, Date: "2025-07-02", Comment: "Loved our stay – comfy bed and fast WiFi!", IsPublic: true, Category: "Apartment", Channel: "Direct"},
		{ID: "6", Property: "Cozy Westminster Studio", Guest: "Mike Chen", Rating: 4, Date: "2025-09-08", Comment: "Great location, minor issues with heating but overall good.", IsPublic: true, Category: "Studio", Channel: "Booking.com"},
		{ID: "7", Property: "Cozy Westminster Studio", Guest: "Amelia Brown", Rating: 5, Date: "2025-08-19", Comment: "Small but very functional studio, perfect for a weekend.", IsPublic: true, Category: "Studio", Channel: "Airbnb"},
		{ID: "8", Property: "Cozy Westminster Studio", Guest: "Jorge Alvarez", Rating: 3, Date: "2025-07-30", Comment: "Good value. Could use better soundproofing.", IsPublic: false, Category: "Studio", Channel: "Direct"},
		{ID: "9", Property: "Cozy Westminster Studio", Guest: "Hannah Lee", Rating: 4, Date: "2025-07-05", Comment: "Clean and close to transport.", IsPublic: true, Category: "Studio", Channel: "Airbnb"},
		{ID: "10", Property: "Luxury Kensington Suite", Guest: "Emma Wilson", Rating: 3, Date: "2025-09-05", Comment: "Nice place but quite noisy at night.", IsPublic: false, Category: "Suite", Channel: "Direct"},
		{ID: "11", Property: "Luxury Kensington Suite", Guest: "Oliver Martin", Rating: 5, Date: "2025-08-18", Comment: "Beautiful suite, elegant interiors and spotless.", IsPublic: true, Category: "Suite", Channel: "Booking.com"},
		{ID: "12", Property: "Luxury Kensington Suite", Guest: "Charlotte Dubois", Rating: 4, Date: "2025-08-01", Comment: "Comfortable bed and great shower pressure.", IsPublic: true, Category: "Suite", Channel: "Direct"},
		{ID: "13", Property: "Luxury Kensington Suite", Guest: "Lucas Moretti", Rating: 4, Date: "2025-07-10", Comment: "Premium feel, a little warm during the day.", IsPublic: true, Category: "Suite", Channel: "Airbnb"},
		{ID: "14", Property: "Modern Chelsea Apartment", Guest: "David Brown", Rating: 5, Date: "2025-09-03", Comment: "Exceptional service and beautiful apartment. Highly recommend!", IsPublic: true, Category: "Apartment", Channel: "Direct"},
		{ID: "15", Property: "Modern Chelsea Apartment", Guest: "Sofia Petrova", Rating: 4, Date: "2025-08-20", Comment: "Stylish and very clean. WiFi could be faster.", IsPublic: true, Category: "Apartment", Channel: "Airbnb"},
		{ID: "16", Property: "Modern Chelsea Apartment", Guest: "Ethan Clark", Rating: 5, Date: "2025-08-03", Comment: "Spacious living room and comfy sofa.", IsPublic: true, Category: "Apartment", Channel: "Booking.com"},
		{ID: "17", Property: "Modern Chelsea Apartment", Guest: "Zara Ahmed", Rating: 4, Date: "2025-07-14", Comment: "Great neighborhood, a few stairs to climb.", IsPublic: false, Category: "Apartment", Channel: "Direct"},
	}
	for i := range reviews {
		reviews[i].ApprovalKey = reviews[i].ID
	}
	return reviews
}
