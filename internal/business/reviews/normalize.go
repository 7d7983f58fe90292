package reviews

import (
	"math"
	"time"

	"github.com/flexliving/reviews-api/pkg/model"
	"github.com/flexliving/reviews-api/pkg/util"
)

// defaultRating is applied when neither an explicit rating nor category
// sub-ratings yield a usable value. Pinned by tests; defaulting an unrateable
// review to the maximum is a data-quality quirk carried over from the source
// system, flagged for product review rather than silently changed.
const defaultRating = 5

// accessor pulls one candidate value out of a raw aggregator record.
type accessor func(raw map[string]any) (any, bool)

func field(name string) accessor {
	return func(raw map[string]any) (any, bool) {
		v, ok := raw[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

func nested(outer, inner string) accessor {
	return func(raw map[string]any) (any, bool) {
		obj, ok := raw[outer].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[inner]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// Each logical field resolves through an ordered alias table; the first
// present value wins. The tables cover every alias the aggregator has been
// observed to use across channels.
var (
	idFields = []accessor{
		field("id"), field("reviewId"), field("review_id"),
		field("_id"), field("uuid"), field("externalId"),
	}
	listingIDFields = []accessor{
		field("listingId"), field("listing_id"),
		field("listingMapId"), field("listing_map_id"),
		field("propertyId"), field("property_id"),
	}
	propertyFields = []accessor{
		field("listingName"), field("propertyName"),
		nested("listing", "name"), nested("property", "name"),
	}
	guestFields = []accessor{
		field("guestName"), field("reviewerName"), field("authorName"),
		field("author"), field("userName"),
	}
	explicitRatingFields = []accessor{
		field("rating"), field("stars"), field("overallRating"), field("score"),
	}
	dateFields = []accessor{
		field("submittedAt"), field("submitted_at"), field("createdAt"),
		field("date"), field("created_at"), field("reviewDate"),
		field("updatedAt"), field("departureDate"), field("arrivalDate"),
	}
	commentFields = []accessor{
		field("publicReview"), field("privateFeedback"), field("revieweeResponse"),
		field("comment"), field("text"), field("content"), field("body"),
	}
	channelFields = []accessor{
		field("channel"), field("source"), field("platform"),
	}
)

func resolve(raw map[string]any, accessors []accessor) (any, bool) {
	for _, get := range accessors {
		if v, ok := get(raw); ok {
			return v, true
		}
	}
	return nil, false
}

func resolveString(raw map[string]any, accessors []accessor, fallback string) string {
	if v, ok := resolve(raw, accessors); ok {
		return util.AsString(v)
	}
	return fallback
}

// Normalize maps one raw aggregator review record into the canonical Review.
// IsPublic is left false; it is only knowable once the approval overlay runs.
// Pure function: every malformed or missing field degrades to a documented
// default instead of failing the record.
func Normalize(raw map[string]any) model.Review {
	id := resolveString(raw, idFields, "")
	if id == "" {
		// No id-like field at all: derive a stable token from the record
		// content so repeated fetches keep the same approval key.
		id = util.HashRecord(raw)
	}

	listingID := resolveString(raw, listingIDFields, "")

	property := resolveString(raw, propertyFields, "")
	if property == "" {
		if listingID != "" {
			property = "Listing " + listingID
		} else {
			property = "Unknown Listing"
		}
	}

	guest := resolveString(raw, guestFields, "")
	if guest == "" {
		guest = "Guest"
	}

	date := resolveString(raw, dateFields, "")
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	channel := resolveString(raw, channelFields, "")
	if channel == "" {
		channel = "Hostaway"
	}

	return model.Review{
		ID:          id,
		ApprovalKey: ApprovalKey(id, listingID),
		ListingID:   listingID,
		Property:    property,
		Guest:       guest,
		Rating:      deriveRating(raw),
		Date:        date,
		Comment:     resolveString(raw, commentFields, ""),
		Category:    "Apartment",
		Channel:     channel,
	}
}

// deriveRating resolves the 1-5 rating in two stages: an explicit positive
// numeric rating is rounded and used directly; otherwise positive category
// sub-ratings (1-10 scale) are averaged, halved, clamped into [1,5] and
// rounded. The final value is always clamped into [1,5].
func deriveRating(raw map[string]any) int {
	if v, ok := resolve(raw, explicitRatingFields); ok {
		if n, numeric := util.AsNumber(v); numeric && n > 0 {
			return clampRating(int(math.Round(n)))
		}
	}

	if derived, ok := categoryRating(raw); ok {
		return clampRating(derived)
	}

	return defaultRating
}

func categoryRating(raw map[string]any) (int, bool) {
	categories, ok := raw["reviewCategory"].([]any)
	if !ok || len(categories) == 0 {
		return 0, false
	}

	var sum float64
	var count int
	for _, entry := range categories {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if n, numeric := util.AsNumber(rec["rating"]); numeric && n > 0 {
			sum += n
			count++
		}
	}
	if count == 0 {
		return 0, false
	}

	avg := sum / float64(count)
	return int(math.Round(math.Max(1, math.Min(5, avg/2)))), true
}

func clampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}
