package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
)

// fakeAttributionRepo is an in-memory AttributionRepository keyed by
// (visitor, campaign) pair.
type fakeAttributionRepo struct {
	records map[string]*visitor.Attribution

	createErr error
	updateErr error

	creates  int
	updates  int
	promotes int
}

func newFakeAttributionRepo() *fakeAttributionRepo {
	return &fakeAttributionRepo{records: make(map[string]*visitor.Attribution)}
}

func pairKey(visitorID, campaignID string) string {
	return visitorID + "|" + campaignID
}

func (f *fakeAttributionRepo) FindByVisitorAndCampaign(visitorID, campaignID string) (*visitor.Attribution, error) {
	a, ok := f.records[pairKey(visitorID, campaignID)]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttributionRepo) FindByVisitorID(visitorID string) ([]*visitor.Attribution, error) {
	var out []*visitor.Attribution
	for _, a := range f.records {
		if a.VisitorID == visitorID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAttributionRepo) Create(a *visitor.Attribution) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	copied := *a
	f.records[pairKey(a.VisitorID, a.CampaignID)] = &copied
	return nil
}

func (f *fakeAttributionRepo) Update(a *visitor.Attribution) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	existing := f.records[pairKey(a.VisitorID, a.CampaignID)]
	existing.LastVisitAt = a.LastVisitAt
	existing.MatchedPages = a.MatchedPages
	existing.TotalPageViews = a.TotalPageViews
	existing.UniquePagesCount = a.UniquePagesCount
	existing.UpdatedAt = a.UpdatedAt
	return nil
}

func (f *fakeAttributionRepo) Promote(a *visitor.Attribution) error {
	f.promotes++
	existing := f.records[pairKey(a.VisitorID, a.CampaignID)]
	existing.IsProspect = a.IsProspect
	existing.CurrentRoom = a.CurrentRoom
	existing.UpdatedAt = a.UpdatedAt
	return nil
}

func (f *fakeAttributionRepo) StatsForVisitor(visitorID string) (*visitor.VisitorStats, error) {
	stats := &visitor.VisitorStats{VisitorID: visitorID}
	for _, a := range f.records {
		if a.VisitorID != visitorID {
			continue
		}
		stats.AttributionCount++
		stats.TotalPageViews += a.TotalPageViews
		stats.UniquePagesCount += a.UniquePagesCount
		last := a.LastVisitAt
		if stats.LastVisitAt == nil || last.After(*stats.LastVisitAt) {
			stats.LastVisitAt = &last
		}
	}
	return stats, nil
}

func testAttributionService(now time.Time) *AttributionService {
	counter := 0
	return &AttributionService{
		now: func() time.Time { return now },
		newID: func() string {
			counter++
			return "test-id-" + string(rune('0'+counter))
		},
	}
}

func TestUpsertCreatesFirstTouch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(now)
	repo := newFakeAttributionRepo()

	created, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a", "/a", "/b"}, "acct-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected creation on first contact")
	}
	if repo.creates != 1 || repo.updates != 0 {
		t.Fatalf("expected 1 create and 0 updates, got %d/%d", repo.creates, repo.updates)
	}

	a, _ := repo.FindByVisitorAndCampaign("v1", "10")
	if a == nil {
		t.Fatal("expected record to be persisted")
	}
	if a.EntryPage == nil || *a.EntryPage != "/a" {
		t.Fatalf("expected entry page /a, got %v", a.EntryPage)
	}
	if !a.FirstVisitAt.Equal(now) || !a.LastVisitAt.Equal(now) {
		t.Fatalf("expected first and last visit both %v, got %v / %v", now, a.FirstVisitAt, a.LastVisitAt)
	}
	if !reflect.DeepEqual(a.MatchedPages, []string{"/a", "/b"}) {
		t.Fatalf("expected deduped pages, got %v", a.MatchedPages)
	}
	if a.TotalPageViews != 2 || a.UniquePagesCount != 2 {
		t.Fatalf("expected counts 2/2, got %d/%d", a.TotalPageViews, a.UniquePagesCount)
	}
	if a.IsProspect {
		t.Fatal("new attributions must not start as prospects")
	}
	if a.CurrentRoom != campaign.RoomNone {
		t.Fatalf("expected no room assigned, got %s", a.CurrentRoom)
	}
	if a.AccountID != "acct-1" {
		t.Fatalf("expected account acct-1, got %s", a.AccountID)
	}
}

func TestUpsertReplacesLastTouchOnly(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(first)
	repo := newFakeAttributionRepo()

	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a", "/b"}, "acct-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := first.Add(48 * time.Hour)
	svc.now = func() time.Time { return second }

	created, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/c"}, "acct-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected update, not creation, on second contact")
	}
	if repo.creates != 1 || repo.updates != 1 {
		t.Fatalf("expected 1 create and 1 update, got %d/%d", repo.creates, repo.updates)
	}

	a, _ := repo.FindByVisitorAndCampaign("v1", "10")
	if !a.FirstVisitAt.Equal(first) {
		t.Fatalf("first-touch timestamp must not move, got %v", a.FirstVisitAt)
	}
	if a.EntryPage == nil || *a.EntryPage != "/a" {
		t.Fatalf("entry page must not move, got %v", a.EntryPage)
	}
	if !a.LastVisitAt.Equal(second) {
		t.Fatalf("expected last visit %v, got %v", second, a.LastVisitAt)
	}
	if !reflect.DeepEqual(a.MatchedPages, []string{"/c"}) {
		t.Fatalf("expected snapshot replacement, got %v", a.MatchedPages)
	}
	if a.TotalPageViews != 1 || a.UniquePagesCount != 1 {
		t.Fatalf("expected counts 1/1, got %d/%d", a.TotalPageViews, a.UniquePagesCount)
	}
}

func TestUpsertWithNoMatchedURLs(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(now)
	repo := newFakeAttributionRepo()

	created, err := svc.upsert(repo, "v1", campaign.ID(10), nil, "acct-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected creation")
	}

	a, _ := repo.FindByVisitorAndCampaign("v1", "10")
	if a.EntryPage != nil {
		t.Fatalf("expected nil entry page, got %v", *a.EntryPage)
	}
	if a.TotalPageViews != 0 || a.UniquePagesCount != 0 {
		t.Fatalf("expected zero counts, got %d/%d", a.TotalPageViews, a.UniquePagesCount)
	}
}

func TestUpsertPropagatesWriteErrors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(now)
	repo := newFakeAttributionRepo()
	repo.createErr = errors.New("disk full")

	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a"}, ""); err == nil {
		t.Fatal("expected create error to propagate")
	}
	if a, _ := repo.FindByVisitorAndCampaign("v1", "10"); a != nil {
		t.Fatalf("expected no record after failed create, got %+v", a)
	}

	repo = newFakeAttributionRepo()
	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.updateErr = errors.New("locked")
	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/b"}, ""); err == nil {
		t.Fatal("expected update error to propagate")
	}
}

func TestPromote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(now)
	repo := newFakeAttributionRepo()

	// No record yet: promotion is a no-op.
	newlyProspect, err := svc.promote(repo, "v1", campaign.ID(10), campaign.RoomOffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newlyProspect || repo.promotes != 0 {
		t.Fatal("expected no-op for absent attribution")
	}

	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Entering the problem room assigns it but does not make a prospect.
	newlyProspect, err = svc.promote(repo, "v1", campaign.ID(10), campaign.RoomProblem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newlyProspect {
		t.Fatal("problem room must not mark a prospect")
	}
	a, _ := repo.FindByVisitorAndCampaign("v1", "10")
	if a.CurrentRoom != campaign.RoomProblem {
		t.Fatalf("expected problem room, got %s", a.CurrentRoom)
	}

	// Reaching the offer room promotes and marks the prospect.
	newlyProspect, err = svc.promote(repo, "v1", campaign.ID(10), campaign.RoomOffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !newlyProspect {
		t.Fatal("expected offer room to newly mark a prospect")
	}
	a, _ = repo.FindByVisitorAndCampaign("v1", "10")
	if !a.IsProspect || a.CurrentRoom != campaign.RoomOffer {
		t.Fatalf("expected prospect in offer room, got prospect=%v room=%s", a.IsProspect, a.CurrentRoom)
	}

	// Rooms never regress, and re-reaching offer does not re-fire.
	promotesBefore := repo.promotes
	newlyProspect, err = svc.promote(repo, "v1", campaign.ID(10), campaign.RoomSolution)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newlyProspect || repo.promotes != promotesBefore {
		t.Fatal("expected shallower room to be a no-op")
	}
	newlyProspect, err = svc.promote(repo, "v1", campaign.ID(10), campaign.RoomOffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newlyProspect {
		t.Fatal("expected existing prospect not to be reported as new")
	}
}

func TestPromoteIgnoresUnassignedRoom(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testAttributionService(now)
	repo := newFakeAttributionRepo()

	if _, err := svc.upsert(repo, "v1", campaign.ID(10), []string{"/a"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newlyProspect, err := svc.promote(repo, "v1", campaign.ID(10), campaign.RoomNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newlyProspect || repo.promotes != 0 {
		t.Fatal("expected unassigned room to be a no-op")
	}
}

func TestDedupeURLs(t *testing.T) {
	if got := dedupeURLs(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}

	got := dedupeURLs([]string{"/a", "/b", "/a", "/c", "/b"})
	want := []string{"/a", "/b", "/c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
