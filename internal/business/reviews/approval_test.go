package reviews

import (
	"errors"
	"testing"

	"github.com/flexliving/reviews-api/pkg/model"
)

func TestApprovalKey(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		listingID string
		want      string
	}{
		{name: "with listing id", id: "r1", listingID: "L1", want: "L1:r1"},
		{name: "without listing id", id: "r1", listingID: "", want: "r1"},
		{name: "numeric ids", id: "7453", listingID: "101", want: "101:7453"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApprovalKey(tt.id, tt.listingID); got != tt.want {
				t.Errorf("ApprovalKey(%q, %q) = %q, want %q", tt.id, tt.listingID, got, tt.want)
			}
		})
	}
}

func TestApplyOverlayDefaultDeny(t *testing.T) {
	revs := []model.Review{
		{ID: "r1", ApprovalKey: "L1:r1"},
		{ID: "r2", ApprovalKey: "X"},
	}
	approvals := map[string]bool{"L1:r1": true}

	got := ApplyOverlay(revs, approvals)

	if !got[0].IsPublic {
		t.Errorf("approved review should be public")
	}
	if got[1].IsPublic {
		t.Errorf("review with no decision must stay private")
	}
	// Input slice is not mutated.
	if revs[0].IsPublic {
		t.Errorf("ApplyOverlay mutated its input")
	}
}

func TestApplyOverlayExplicitDeny(t *testing.T) {
	got := ApplyOverlay(
		[]model.Review{{ApprovalKey: "k"}},
		map[string]bool{"k": false},
	)
	if got[0].IsPublic {
		t.Errorf("explicitly denied review must be private")
	}
}

func TestParseApprovalUpdatesReviewList(t *testing.T) {
	body := []byte(`[
		{"id": 7453, "listingId": 101, "isPublic": true},
		{"approvalKey": "L2:r9", "isPublic": false},
		{"id": "ignored-no-flag"}
	]`)

	updates, err := ParseApprovalUpdates(body)
	if err != nil {
		t.Fatalf("ParseApprovalUpdates: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Key != "101:7453" || !updates[0].IsPublic {
		t.Errorf("update 0 = %+v", updates[0])
	}
	if updates[1].Key != "L2:r9" || updates[1].IsPublic {
		t.Errorf("update 1 = %+v", updates[1])
	}
}

func TestParseApprovalUpdatesEnvelope(t *testing.T) {
	body := []byte(`{"updates": [
		{"approvalKey": "L1:r1", "isPublic": true},
		{"approvalKey": "r2", "isPublic": false}
	]}`)

	updates, err := ParseApprovalUpdates(body)
	if err != nil {
		t.Fatalf("ParseApprovalUpdates: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Key != "L1:r1" || !updates[0].IsPublic {
		t.Errorf("update 0 = %+v", updates[0])
	}
}

func TestParseApprovalUpdatesSinglePair(t *testing.T) {
	updates, err := ParseApprovalUpdates([]byte(`{"approvalKey": "L1:r1", "isPublic": true}`))
	if err != nil {
		t.Fatalf("ParseApprovalUpdates: %v", err)
	}
	if len(updates) != 1 || updates[0].Key != "L1:r1" || !updates[0].IsPublic {
		t.Fatalf("updates = %+v", updates)
	}
}

func TestParseApprovalUpdatesEnvelopeSkipsUndecidedEntries(t *testing.T) {
	body := []byte(`{"updates": [
		{"approvalKey": "L1:r1", "isPublic": true},
		{"approvalKey": "L1:r2"}
	]}`)

	updates, err := ParseApprovalUpdates(body)
	if err != nil {
		t.Fatalf("ParseApprovalUpdates: %v", err)
	}
	// The entry without a decision is dropped, never recorded as a deny.
	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d: %+v", len(updates), updates)
	}
	if updates[0].Key != "L1:r1" || !updates[0].IsPublic {
		t.Errorf("update = %+v", updates[0])
	}
}

// Every structurally unusable payload surfaces as ErrNoUpdates so the HTTP
// layer maps it to a rejected request rather than a server failure.
func TestParseApprovalUpdatesRejectsUnusableBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "empty array", body: `[]`},
		{name: "array with no decisions", body: `[{"id": "r1"}]`},
		{name: "missing flag", body: `{"approvalKey": "L1:r1"}`},
		{name: "flag without key", body: `{"isPublic": true}`},
		{name: "not json", body: `not json`},
		{name: "envelope with blank key", body: `{"updates": [{"approvalKey": "", "isPublic": true}]}`},
		{name: "envelope with only undecided entries", body: `{"updates": [{"approvalKey": "L1:r1"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseApprovalUpdates([]byte(tt.body))
			if err == nil {
				t.Fatalf("expected rejection for %s", tt.body)
			}
			if !errors.Is(err, ErrNoUpdates) {
				t.Errorf("err = %v, want ErrNoUpdates", err)
			}
		})
	}
}
