package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/internal/repository"
	"github.com/flexliving/reviews-api/pkg/model"
)

type fakeSource struct {
	records []map[string]any
	err     error
	calls   int
}

func (f *fakeSource) FetchReviews(ctx context.Context, q hostaway.ReviewQuery) ([]map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newService(t *testing.T, source Source, useUpstream bool) *Service {
	t.Helper()
	s := store.New(t.TempDir())
	return NewService(source, useUpstream,
		repository.NewReviewRepository(s),
		repository.NewApprovalRepository(s),
		nil)
}

func TestListAggregatorPathWithOverlay(t *testing.T) {
	source := &fakeSource{records: []map[string]any{
		{"id": "r1", "listingId": "L1", "publicReview": "Great", "rating": float64(5)},
		{"id": "r2", "listingId": "L1", "publicReview": "Fine", "rating": float64(4)},
	}}
	svc := newService(t, source, true)
	ctx := context.Background()

	if _, err := svc.UpdateApprovals(ctx, []byte(`{"approvalKey": "L1:r1", "isPublic": true}`)); err != nil {
		t.Fatalf("UpdateApprovals: %v", err)
	}

	got, err := svc.List(ctx, hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].IsPublic {
		t.Errorf("approved review should be public")
	}
	if got[1].IsPublic {
		t.Errorf("undecided review must stay private (default-deny)")
	}
}

func TestListFallsBackToLocalOnAggregatorFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	svc := newService(t, source, true)

	got, err := svc.List(context.Background(), hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List should not surface an aggregator failure: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("aggregator attempted %d times, want exactly 1", source.calls)
	}
	if len(got) == 0 {
		t.Errorf("fallback should serve the seeded local reviews")
	}
}

func TestListLocalOnlyWithoutCredentials(t *testing.T) {
	source := &fakeSource{records: []map[string]any{{"id": "r1"}}}
	svc := newService(t, source, false)

	got, err := svc.List(context.Background(), hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if source.calls != 0 {
		t.Errorf("aggregator must not be called without credentials")
	}
	if len(got) == 0 {
		t.Errorf("expected seeded local reviews")
	}
}

func TestListLocalApprovalOverrides(t *testing.T) {
	svc := newService(t, nil, false)
	ctx := context.Background()

	before, err := svc.List(ctx, hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	target := before[0]
	if !target.IsPublic {
		t.Fatalf("expected a seeded public review to flip")
	}

	if _, err := svc.UpdateApprovals(ctx, []byte(`{"approvalKey": "`+target.ApprovalKey+`", "isPublic": false}`)); err != nil {
		t.Fatalf("UpdateApprovals: %v", err)
	}

	after, err := svc.List(ctx, hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, r := range after {
		if r.ApprovalKey == target.ApprovalKey && r.IsPublic {
			t.Errorf("explicit denial should override the stored flag")
		}
	}
}

func TestUpdateApprovalsScenario(t *testing.T) {
	source := &fakeSource{records: []map[string]any{
		{"id": "r1", "listingId": "L1"},
		{"id": "r2", "listingId": "L1"},
	}}
	svc := newService(t, source, true)
	ctx := context.Background()

	if _, err := svc.UpdateApprovals(ctx, []byte(`{"approvalKey": "L1:r1", "isPublic": true}`)); err != nil {
		t.Fatalf("UpdateApprovals: %v", err)
	}

	got, err := svc.List(ctx, hostaway.ReviewQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	byKey := map[string]bool{}
	for _, r := range got {
		byKey[r.ApprovalKey] = r.IsPublic
	}
	if !byKey["L1:r1"] {
		t.Errorf("L1:r1 should be public after approval")
	}
	if byKey["L1:r2"] {
		t.Errorf("L1:r2 was never approved and must stay private")
	}
}

func TestUpdateApprovalsRejectsUnusableBody(t *testing.T) {
	svc := newService(t, nil, false)
	ctx := context.Background()

	bodies := []string{
		`{}`,
		`{"updates": [{"approvalKey": "", "isPublic": true}]}`,
	}
	for _, body := range bodies {
		if _, err := svc.UpdateApprovals(ctx, []byte(body)); !errors.Is(err, ErrNoUpdates) {
			t.Errorf("UpdateApprovals(%s) err = %v, want ErrNoUpdates", body, err)
		}
	}
}

func TestListFiltersLocalByListingID(t *testing.T) {
	svc := newService(t, nil, false)
	ctx := context.Background()

	local := []model.Review{
		{ID: "r1", ListingID: "L1", Property: "Flat", Guest: "A", Rating: 5},
		{ID: "r2", ListingID: "L1", Property: "Flat", Guest: "B", Rating: 4},
		{ID: "r3", ListingID: "L2", Property: "Studio", Guest: "C", Rating: 3},
	}
	if err := svc.SaveLocal(ctx, local); err != nil {
		t.Fatalf("SaveLocal: %v", err)
	}

	got, err := svc.List(ctx, hostaway.ReviewQuery{ListingID: "L1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.ListingID != "L1" {
			t.Errorf("unexpected listing %q in filtered result", r.ListingID)
		}
	}
}
