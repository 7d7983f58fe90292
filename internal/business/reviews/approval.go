package reviews

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/flexliving/reviews-api/pkg/model"
	"github.com/flexliving/reviews-api/pkg/util"
)

// ErrNoUpdates signals an approval-update payload that matched none of the
// accepted shapes. Surfaced to the caller as a rejected request.
var ErrNoUpdates = errors.New("reviews: no usable approval updates in payload")

// go-playground/validator/v10: checks each parsed update carries a key.
var validate = validator.New()

// ApprovalKey derives the composite identity used to persist approval
// decisions: "{listingId}:{id}" when a listing id is present, else the review
// id alone. Deterministic so re-fetched aggregator data merges with
// previously stored decisions.
func ApprovalKey(id, listingID string) string {
	if listingID != "" {
		return listingID + ":" + id
	}
	return id
}

// ApplyOverlay sets IsPublic on each review from the approval map.
// Default-deny: a key with no recorded decision stays private.
func ApplyOverlay(revs []model.Review, approvals map[string]bool) []model.Review {
	out := make([]model.Review, len(revs))
	for i, r := range revs {
		r.IsPublic = approvals[r.ApprovalKey]
		out[i] = r
	}
	return out
}

// reviewPatch is one entry of the review-list update shape: a review-like
// object carrying an explicit isPublic decision.
type reviewPatch struct {
	ID          any    `json:"id"`
	ListingID   any    `json:"listingId"`
	ApprovalKey string `json:"approvalKey"`
	IsPublic    *bool  `json:"isPublic"`
}

type updateEnvelope struct {
	Updates     []reviewPatch `json:"updates"`
	ApprovalKey string        `json:"approvalKey"`
	IsPublic    *bool         `json:"isPublic"`
}

// ParseApprovalUpdates normalizes an approval-update body into (key, value)
// pairs. Three shapes are accepted: a JSON array of review-like objects each
// carrying isPublic (key derived from id/listingId when absent), an object
// with an explicit updates list, or a single {approvalKey, isPublic} object.
// A body yielding zero usable updates is rejected with ErrNoUpdates.
func ParseApprovalUpdates(body []byte) ([]model.ApprovalUpdate, error) {
	var patches []reviewPatch
	if err := json.Unmarshal(body, &patches); err == nil {
		return validated(collectUpdates(patches))
	}

	var env updateEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUpdates, err)
	}

	if len(env.Updates) > 0 {
		return validated(collectUpdates(env.Updates))
	}

	if env.ApprovalKey != "" && env.IsPublic != nil {
		return validated([]model.ApprovalUpdate{{Key: env.ApprovalKey, IsPublic: *env.IsPublic}})
	}

	return nil, ErrNoUpdates
}

// collectUpdates keeps only entries carrying an explicit isPublic decision;
// an omitted flag is never persisted as a deny on the caller's behalf.
func collectUpdates(patches []reviewPatch) []model.ApprovalUpdate {
	updates := make([]model.ApprovalUpdate, 0, len(patches))
	for _, p := range patches {
		if p.IsPublic == nil {
			continue
		}
		key := p.ApprovalKey
		if key == "" {
			key = ApprovalKey(util.AsString(p.ID), util.AsString(p.ListingID))
		}
		if key == "" {
			continue
		}
		updates = append(updates, model.ApprovalUpdate{Key: key, IsPublic: *p.IsPublic})
	}
	return updates
}

// validated wraps every failure in ErrNoUpdates so callers surface any
// unusable payload as a rejected request.
func validated(updates []model.ApprovalUpdate) ([]model.ApprovalUpdate, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	for i, u := range updates {
		if err := validate.Struct(u); err != nil {
			return nil, fmt.Errorf("%w: update %d: %v", ErrNoUpdates, i, err)
		}
	}
	return updates, nil
}
