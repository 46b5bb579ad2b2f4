package campaign

import (
	"reflect"
	"testing"
	"time"
)

func TestIDProjections(t *testing.T) {
	id := ID(42)
	if id.Int() != 42 {
		t.Fatalf("expected Int() 42, got %d", id.Int())
	}
	if id.String() != "42" {
		t.Fatalf("expected String() %q, got %q", "42", id.String())
	}

	parsed, err := ParseID("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected round-trip ID %d, got %d", id, parsed)
	}

	if _, err := ParseID("not-a-number"); err == nil {
		t.Fatal("expected error for non-numeric ID")
	}
}

func TestRoomTypeRank(t *testing.T) {
	if RoomProblem.Rank() >= RoomSolution.Rank() {
		t.Fatal("expected problem to rank before solution")
	}
	if RoomSolution.Rank() >= RoomOffer.Rank() {
		t.Fatal("expected solution to rank before offer")
	}
	if RoomOffer.Rank() >= RoomNone.Rank() {
		t.Fatal("expected offer to rank before the unassigned sentinel")
	}
	if RoomType("bogus").Rank() != RoomNone.Rank() {
		t.Fatal("expected unknown rooms to rank with the sentinel")
	}
}

func TestContentLinkIndex(t *testing.T) {
	idx := NewContentLinkIndex(7, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	idx.Add(ContentLink{CampaignID: 30, URL: "/c"})
	idx.Add(ContentLink{CampaignID: 10, URL: "/a"})
	idx.Add(ContentLink{CampaignID: 10, URL: "/b"})

	if idx.ClientID != 7 {
		t.Fatalf("expected client 7, got %d", idx.ClientID)
	}
	if idx.CampaignCount() != 2 {
		t.Fatalf("expected 2 campaigns, got %d", idx.CampaignCount())
	}
	if idx.LinkCount() != 3 {
		t.Fatalf("expected 3 links, got %d", idx.LinkCount())
	}

	if got, want := idx.Campaigns(), []ID{10, 30}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sorted campaigns %v, got %v", want, got)
	}

	links := idx.Links(10)
	if len(links) != 2 || links[0].URL != "/a" || links[1].URL != "/b" {
		t.Fatalf("expected insertion order preserved, got %v", links)
	}
	if idx.Links(99) != nil {
		t.Fatal("expected nil links for absent campaign")
	}
}
