package matching

import (
	"reflect"
	"testing"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
)

func buildIndex(links ...campaign.ContentLink) *campaign.ContentLinkIndex {
	idx := campaign.NewContentLinkIndex(1, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	for _, link := range links {
		idx.Add(link)
	}
	return idx
}

func TestMatchVisitorToCampaigns(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 10, URL: "/blog/launch", Room: campaign.RoomProblem},
		campaign.ContentLink{CampaignID: 10, URL: "/pricing", Room: campaign.RoomOffer},
		campaign.ContentLink{CampaignID: 20, URL: "/docs", Room: campaign.RoomSolution},
	)

	pages := []string{
		"https://example.com/blog/launch?utm_source=x",
		"/docs/install",
		"/about",
	}

	matched := MatchVisitorToCampaigns(pages, idx)

	if len(matched) != 2 {
		t.Fatalf("expected 2 matched campaigns, got %d", len(matched))
	}
	want10 := []string{"https://example.com/blog/launch?utm_source=x"}
	if !reflect.DeepEqual(matched[10], want10) {
		t.Fatalf("campaign 10: expected %v, got %v", want10, matched[10])
	}
	want20 := []string{"/docs/install"}
	if !reflect.DeepEqual(matched[20], want20) {
		t.Fatalf("campaign 20: expected %v, got %v", want20, matched[20])
	}
}

func TestMatchVisitorToCampaignsRecordsOriginalURL(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 5, URL: "/pricing"},
	)

	matched := MatchVisitorToCampaigns([]string{"HTTPS://Example.com/Pricing/?ref=ad"}, idx)

	if len(matched[5]) != 1 || matched[5][0] != "HTTPS://Example.com/Pricing/?ref=ad" {
		t.Fatalf("expected the raw visitor URL to be recorded, got %v", matched[5])
	}
}

func TestMatchVisitorToCampaignsDeduplicatesPerCampaign(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 7, URL: "/pricing"},
		campaign.ContentLink{CampaignID: 7, URL: "/pricing/enterprise"},
	)

	// Same page repeated, and a page matching two links of the same campaign.
	pages := []string{"/pricing", "/pricing", "/pricing/enterprise"}

	matched := MatchVisitorToCampaigns(pages, idx)

	want := []string{"/pricing", "/pricing/enterprise"}
	if !reflect.DeepEqual(matched[7], want) {
		t.Fatalf("expected %v, got %v", want, matched[7])
	}
}

func TestMatchVisitorToCampaignsOmitsUnmatchedCampaigns(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 1, URL: "/blog"},
		campaign.ContentLink{CampaignID: 2, URL: "/webinar"},
	)

	matched := MatchVisitorToCampaigns([]string{"/blog/post"}, idx)

	if _, ok := matched[2]; ok {
		t.Fatalf("expected no entry for campaign 2, got %v", matched[2])
	}
	if len(matched) != 1 {
		t.Fatalf("expected exactly 1 campaign, got %d", len(matched))
	}
}

func TestMatchVisitorToCampaignsSkipsUnusableInput(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 3, URL: "/blog"},
	)

	// Pages that normalize to empty never match anything.
	matched := MatchVisitorToCampaigns([]string{"", "/", "https://example.com"}, idx)
	if len(matched) != 0 {
		t.Fatalf("expected no matches, got %v", matched)
	}

	if got := MatchVisitorToCampaigns(nil, idx); len(got) != 0 {
		t.Fatalf("expected empty result for nil pages, got %v", got)
	}
	if got := MatchVisitorToCampaigns([]string{"/blog"}, nil); len(got) != 0 {
		t.Fatalf("expected empty result for nil index, got %v", got)
	}
}

func TestMatchVisitorToCampaignsIsDeterministic(t *testing.T) {
	idx := buildIndex(
		campaign.ContentLink{CampaignID: 30, URL: "/a"},
		campaign.ContentLink{CampaignID: 10, URL: "/a"},
		campaign.ContentLink{CampaignID: 20, URL: "/a"},
	)

	pages := []string{"/a/one", "/a/two"}

	first := MatchVisitorToCampaigns(pages, idx)
	for i := 0; i < 10; i++ {
		if got := MatchVisitorToCampaigns(pages, idx); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: expected %v, got %v", i, first, got)
		}
	}
}
