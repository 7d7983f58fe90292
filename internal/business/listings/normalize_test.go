package listings

import (
	"encoding/json"
	"testing"

	"github.com/flexliving/reviews-api/pkg/model"
)

func TestNormalizeListing(t *testing.T) {
	raw := map[string]any{
		"id":                 float64(101),
		"name":               "Beautiful Pimlico Flat",
		"propertyType":       "Apartment",
		"description":        "Bright one-bedroom flat.",
		"personCapacity":     float64(2),
		"bedroomsNumber":     float64(1),
		"bathroomsNumber":    float64(1),
		"publicAddress":      "Pimlico, London",
		"city":               "London",
		"country":            "United Kingdom",
		"lat":                51.4893,
		"lng":                -0.1334,
		"price":              float64(120),
		"checkInTimeStart":   "15:00",
		"checkOutTime":       "10:00",
		"cancellationPolicy": "flexible",
	}

	got := Normalize(raw, nil)

	if got.ID != "101" {
		t.Errorf("id = %q, want 101", got.ID)
	}
	if got.Name != "Beautiful Pimlico Flat" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Summary != "Apartment • 2 guests • 1 bedroom • 1 bathroom" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Channel != "Hostaway" {
		t.Errorf("channel = %q, want Hostaway", got.Channel)
	}
	if got.Guests != 2 || got.Bedrooms != 1 || got.Bathrooms != 1 {
		t.Errorf("counts = %d/%d/%d", got.Guests, got.Bedrooms, got.Bathrooms)
	}
	if got.Address != "Pimlico, London" {
		t.Errorf("address = %q", got.Address)
	}
	if got.Lat == nil || *got.Lat != 51.4893 {
		t.Errorf("lat = %v", got.Lat)
	}
	if got.HouseRules.CheckIn != "15:00" || got.HouseRules.CheckOut != "10:00" {
		t.Errorf("house rules = %+v", got.HouseRules)
	}
	if got.HouseRules.PetsAllowed || got.HouseRules.SmokingAllowed {
		t.Errorf("pets/smoking must default to false")
	}
	if !got.IsActive {
		t.Errorf("normalized listing should be active")
	}
	if got.CreatedAt == "" {
		t.Errorf("createdAt should be set")
	}
}

func TestNormalizeCountsRoundTrip(t *testing.T) {
	raw := map[string]any{
		"id":              float64(1),
		"personCapacity":  float64(6),
		"bedroomsNumber":  float64(3),
		"bathroomsNumber": float64(2),
	}

	normalized := Normalize(raw, nil)

	data, err := json.Marshal(normalized)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back model.Listing
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Guests != 6 || back.Bedrooms != 3 || back.Bathrooms != 2 {
		t.Errorf("counts after round trip = %d/%d/%d, want 6/3/2", back.Guests, back.Bedrooms, back.Bathrooms)
	}
}

func TestNormalizeSummarySingulars(t *testing.T) {
	raw := map[string]any{
		"id":              float64(1),
		"roomType":        "Studio",
		"personCapacity":  float64(1),
		"bedroomsNumber":  float64(0),
		"bathroomsNumber": float64(1),
	}
	got := Normalize(raw, nil)
	if got.Summary != "Studio • 1 guest • 0 bedrooms • 1 bathroom" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestNormalizeGalleryOrdering(t *testing.T) {
	raw := map[string]any{
		"id": float64(1),
		"listingImages": []any{
			map[string]any{"url": "C", "sortOrder": float64(2)},
			map[string]any{"url": "A", "sortOrder": float64(0)},
			map[string]any{"url": "B", "sortOrder": float64(1)},
			map[string]any{"url": "", "sortOrder": float64(9)},
			map[string]any{"sortOrder": float64(3)},
		},
	}

	got := Normalize(raw, nil)

	want := []string{"A", "B", "C"}
	if len(got.Gallery) != len(want) {
		t.Fatalf("gallery = %v, want %v", got.Gallery, want)
	}
	for i := range want {
		if got.Gallery[i] != want[i] {
			t.Errorf("gallery[%d] = %q, want %q", i, got.Gallery[i], want[i])
		}
	}
}

func TestNormalizeGalleryStableForEqualSortOrder(t *testing.T) {
	raw := map[string]any{
		"id": float64(1),
		"listingImages": []any{
			map[string]any{"url": "first"},
			map[string]any{"url": "second"},
			map[string]any{"url": "third"},
		},
	}
	got := Normalize(raw, nil)
	want := []string{"first", "second", "third"}
	for i := range want {
		if got.Gallery[i] != want[i] {
			t.Errorf("gallery[%d] = %q, want %q (relative order must be preserved)", i, got.Gallery[i], want[i])
		}
	}
}

func TestNormalizeAmenities(t *testing.T) {
	raw := map[string]any{
		"id": float64(1),
		"listingAmenities": []any{
			map[string]any{"amenityId": float64(1)},
			map[string]any{"amenityId": float64(99)},
		},
	}
	amenityMap := map[string]string{"1": "WiFi"}

	got := Normalize(raw, amenityMap)

	if len(got.Amenities) != 2 {
		t.Fatalf("amenities = %+v", got.Amenities)
	}
	if got.Amenities[0].Label != "WiFi" || got.Amenities[0].Icon != "1" {
		t.Errorf("amenity 0 = %+v", got.Amenities[0])
	}
	// No mapping entry: raw id kept as label.
	if got.Amenities[1].Label != "99" {
		t.Errorf("amenity 1 label = %q, want raw id 99", got.Amenities[1].Label)
	}
}

func TestNormalizeAddressSynthesized(t *testing.T) {
	raw := map[string]any{
		"id":      float64(1),
		"street":  "12 Artillery Row",
		"city":    "London",
		"zipcode": "SW1P 1RZ",
		"country": "United Kingdom",
	}
	got := Normalize(raw, nil)
	if got.Address != "12 Artillery Row, London, SW1P 1RZ, United Kingdom" {
		t.Errorf("address = %q", got.Address)
	}
}

func TestNormalizeNamePlaceholder(t *testing.T) {
	got := Normalize(map[string]any{"id": float64(7)}, nil)
	if got.Name != "Listing 7" {
		t.Errorf("name = %q, want Listing 7", got.Name)
	}
}
