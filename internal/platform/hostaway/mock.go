package hostaway

// Canned records served in mock mode so the full pipeline can run without
// aggregator credentials. The shapes mirror what the live API returns,
// including the category sub-rating records on a 1-10 scale.

func mockReviews() []map[string]any {
	return []map[string]any{
		{
			"id":           float64(7453),
			"listingMapId": float64(101),
			"listingName":  "Beautiful Pimlico Flat",
			"guestName":    "Sarah Johnson",
			"rating":       float64(5),
			"submittedAt":  "2025-09-10 14:02:11",
			"publicReview": "Amazing stay! The apartment was spotless and exactly as described.",
			"channel":      "Airbnb",
		},
		{
			"id":           float64(7461),
			"listingMapId": float64(101),
			"guestName":    "Liam O'Connor",
			"submittedAt":  "2025-08-28 09:30:00",
			"publicReview": "Great location near Victoria. A bit warm in the afternoons but otherwise perfect.",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": float64(9)},
				map[string]any{"category": "communication", "rating": float64(8)},
				map[string]any{"category": "location", "rating": float64(7)},
			},
		},
		{
			"reviewId":      float64(7480),
			"propertyId":    float64(102),
			"authorName":    "Mike Chen",
			"overallRating": float64(4),
			"createdAt":     "2025-09-08",
			"comment":       "Great location, minor issues with heating but overall good.",
			"source":        "Booking.com",
		},
	}
}

func mockListings() []map[string]any {
	return []map[string]any{
		{
			"id":                 float64(101),
			"name":               "Beautiful Pimlico Flat",
			"propertyType":       "Apartment",
			"description":        "Bright one-bedroom flat a short walk from Victoria station.",
			"personCapacity":     float64(2),
			"bedroomsNumber":     float64(1),
			"bathroomsNumber":    float64(1),
			"publicAddress":      "Pimlico, London, United Kingdom",
			"city":               "London",
			"country":            "United Kingdom",
			"lat":                51.4893,
			"lng":                -0.1334,
			"price":              float64(120),
			"checkInTimeStart":   "15:00",
			"checkOutTime":       "10:00",
			"cancellationPolicy": "flexible",
			"listingAmenities": []any{
				map[string]any{"amenityId": float64(1)},
				map[string]any{"amenityId": float64(2)},
			},
			"listingImages": []any{
				map[string]any{"url": "https://img.example.com/pimlico-2.jpg", "sortOrder": float64(1)},
				map[string]any{"url": "https://img.example.com/pimlico-1.jpg", "sortOrder": float64(0)},
			},
		},
		{
			"id":              float64(102),
			"name":            "Cozy Westminster Studio",
			"roomType":        "Studio",
			"personCapacity":  float64(1),
			"bedroomsNumber":  float64(0),
			"bathroomsNumber": float64(1),
			"street":          "12 Artillery Row",
			"city":            "London",
			"country":         "United Kingdom",
			"listingImages": []any{
				map[string]any{"url": "https://img.example.com/westminster-1.jpg"},
			},
		},
	}
}
