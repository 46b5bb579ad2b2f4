package stores

import (
	"testing"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
)

func TestLinkIndexCacheLifecycle(t *testing.T) {
	store := NewAttributionStore()
	store.InitializeTenant("t1")

	if _, found := store.GetLinkIndex("t1", 7); found {
		t.Fatal("expected miss before any set")
	}

	idx := campaign.NewContentLinkIndex(7, time.Now().UTC())
	idx.Add(campaign.ContentLink{CampaignID: 1, URL: "/a"})
	store.SetLinkIndex("t1", 7, idx)

	got, found := store.GetLinkIndex("t1", 7)
	if !found || got.ClientID != 7 {
		t.Fatalf("expected hit for client 7, found=%v got=%v", found, got)
	}

	// Other tenants never see it.
	if _, found := store.GetLinkIndex("t2", 7); found {
		t.Fatal("expected miss for a different tenant")
	}

	store.InvalidateLinkIndex("t1", 7)
	if _, found := store.GetLinkIndex("t1", 7); found {
		t.Fatal("expected miss after invalidation")
	}
}

func TestVisitorStatsCacheLifecycle(t *testing.T) {
	store := NewAttributionStore()

	// Set on an uninitialized tenant lazily creates the cache.
	stats := &visitor.VisitorStats{VisitorID: "v1", AttributionCount: 2}
	store.SetVisitorStats("t1", "v1", stats)

	got, found := store.GetVisitorStats("t1", "v1")
	if !found || got.AttributionCount != 2 {
		t.Fatalf("expected cached stats, found=%v got=%v", found, got)
	}

	store.InvalidateVisitorStats("t1", "v1")
	if _, found := store.GetVisitorStats("t1", "v1"); found {
		t.Fatal("expected miss after invalidation")
	}
}

func TestInvalidateTenant(t *testing.T) {
	store := NewAttributionStore()
	store.SetLinkIndex("t1", 1, campaign.NewContentLinkIndex(1, time.Now().UTC()))
	store.SetVisitorStats("t1", "v1", &visitor.VisitorStats{VisitorID: "v1"})

	store.InvalidateTenant("t1")

	if _, found := store.GetLinkIndex("t1", 1); found {
		t.Fatal("expected link index cleared")
	}
	if _, found := store.GetVisitorStats("t1", "v1"); found {
		t.Fatal("expected visitor stats cleared")
	}

	summary := store.GetSummary("t1")
	if summary["linkIndexes"] != 0 || summary["visitorStats"] != 0 {
		t.Fatalf("expected empty summary, got %v", summary)
	}
}

func TestGetTenantIDs(t *testing.T) {
	store := NewAttributionStore()
	store.InitializeTenant("t1")
	store.InitializeTenant("t2")
	store.InitializeTenant("t1")

	ids := store.GetTenantIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 tenants, got %v", ids)
	}
}
