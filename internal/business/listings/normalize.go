package listings

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/flexliving/reviews-api/pkg/model"
	"github.com/flexliving/reviews-api/pkg/util"
)

// Normalize maps one raw aggregator listing record into the canonical
// Listing. amenityMap resolves amenity ids to labels; pass nil to keep raw
// ids as labels.
func Normalize(raw map[string]any, amenityMap map[string]string) model.Listing {
	id := firstString(raw, "id", "listingId", "listing_id")

	name := firstString(raw, "name", "externalListingName", "internalListingName")
	if name == "" {
		name = "Listing " + id
	}

	description := firstString(raw,
		"description", "homeawayPropertyDescription",
		"bookingcomPropertyDescription", "airbnbSummary")

	guests := firstCount(raw, "personCapacity", "guestsIncluded")
	bedrooms := firstCount(raw, "bedroomsNumber")
	bathrooms := firstCount(raw, "bathroomsNumber", "guestBathroomsNumber")

	propertyType := firstString(raw, "propertyType", "roomType")
	if propertyType == "" {
		propertyType = "Apartment"
	}

	category := firstString(raw, "roomType", "propertyType")
	if category == "" {
		category = "Apartment"
	}

	address := firstString(raw, "publicAddress", "address")
	if address == "" {
		address = joinParts(", ",
			firstString(raw, "street"),
			firstString(raw, "city"),
			firstString(raw, "state"),
			firstString(raw, "zipcode"),
			firstString(raw, "country"))
	}

	return model.Listing{
		ID:                 id,
		Name:               name,
		Summary:            summarize(propertyType, guests, bedrooms, bathrooms),
		Description:        description,
		Category:           category,
		Channel:            "Hostaway",
		Guests:             guests,
		Bedrooms:           bedrooms,
		Bathrooms:          bathrooms,
		Address:            address,
		City:               firstString(raw, "city"),
		Country:            firstString(raw, "country"),
		Lat:                floatField(raw, "lat"),
		Lng:                floatField(raw, "lng"),
		Price:              floatField(raw, "price"),
		Rating:             floatField(raw, "starRating"),
		Amenities:          normalizeAmenities(raw, amenityMap),
		Gallery:            normalizeGallery(raw),
		HouseRules:         normalizeHouseRules(raw),
		CancellationPolicy: firstString(raw, "cancellationPolicy"),
		IsActive:           true,
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
	}
}

// summarize builds the "Apartment • 2 guests • 1 bedroom • 1 bathroom" line,
// singular form only when the count is exactly one.
func summarize(propertyType string, guests, bedrooms, bathrooms int) string {
	var parts []string
	if guests > 0 {
		parts = append(parts, pluralize(guests, "guest"))
	}
	parts = append(parts, pluralize(bedrooms, "bedroom"), pluralize(bathrooms, "bathroom"))
	return propertyType + " • " + strings.Join(parts, " • ")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// normalizeAmenities resolves each raw amenity to a label through the lookup
// map, keeping the raw id as label when no mapping entry exists. Entries
// without any usable label are dropped.
func normalizeAmenities(raw map[string]any, amenityMap map[string]string) []model.Amenity {
	entries, ok := raw["listingAmenities"].([]any)
	if !ok {
		return []model.Amenity{}
	}
	amenities := make([]model.Amenity, 0, len(entries))
	for _, entry := range entries {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := util.AsString(rec["amenityId"])
		if id == "" {
			id = util.AsString(rec["id"])
		}
		label := amenityMap[id]
		if label == "" {
			label = id
		}
		if label == "" {
			continue
		}
		amenities = append(amenities, model.Amenity{Icon: id, Label: label})
	}
	return amenities
}

// normalizeGallery keeps images with a non-empty URL, in ascending sortOrder
// (default 0, stable for ties), projected to the URL strings.
func normalizeGallery(raw map[string]any) []string {
	entries, ok := raw["listingImages"].([]any)
	if !ok {
		return []string{}
	}

	type image struct {
		url   string
		order float64
	}
	images := make([]image, 0, len(entries))
	for _, entry := range entries {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		url, _ := rec["url"].(string)
		if url == "" {
			continue
		}
		order, _ := util.AsNumber(rec["sortOrder"])
		images = append(images, image{url: url, order: order})
	}

	sort.SliceStable(images, func(i, j int) bool { return images[i].order < images[j].order })

	gallery := make([]string, len(images))
	for i, img := range images {
		gallery[i] = img.url
	}
	return gallery
}

func normalizeHouseRules(raw map[string]any) model.HouseRules {
	// Pets/smoking flags are absent from the aggregator schema; false is the
	// documented default, not a lost field.
	return model.HouseRules{
		CheckIn:  firstString(raw, "checkInTimeStart"),
		CheckOut: firstString(raw, "checkOutTime"),
	}
}

func firstString(raw map[string]any, names ...string) string {
	for _, name := range names {
		if v, ok := raw[name]; ok && v != nil {
			return util.AsString(v)
		}
	}
	return ""
}

// firstCount coerces the first present alias to a non-negative count; a
// present but non-numeric value is 0, later aliases are not consulted.
func firstCount(raw map[string]any, names ...string) int {
	for _, name := range names {
		if v, ok := raw[name]; ok && v != nil {
			n, numeric := util.AsNumber(v)
			if !numeric || n < 0 {
				return 0
			}
			return int(n)
		}
	}
	return 0
}

func floatField(raw map[string]any, name string) *float64 {
	if n, ok := raw[name].(float64); ok {
		return &n
	}
	return nil
}

func joinParts(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
