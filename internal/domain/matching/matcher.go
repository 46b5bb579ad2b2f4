package matching

import (
	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
)

// MatchVisitorToCampaigns intersects a visitor's recently seen URLs against
// every campaign in the index. The result maps campaign IDs to the visitor
// URLs that matched at least one of the campaign's content links.
//
// The original (pre-normalization) visitor URL is what gets recorded, so
// query strings survive for downstream display. A visitor URL appears at
// most once per campaign no matter how many content links it matched, and
// campaigns with no matches are omitted entirely. Output is deterministic
// for a given (pages, index) pair.
func MatchVisitorToCampaigns(pages []string, idx *campaign.ContentLinkIndex) map[campaign.ID][]string {
	matched := make(map[campaign.ID][]string)
	if idx == nil || len(pages) == 0 {
		return matched
	}

	for _, campaignID := range idx.Campaigns() {
		links := idx.Links(campaignID)
		seen := make(map[string]bool)

		for _, page := range pages {
			if seen[page] {
				continue
			}

			visitorPath := Normalize(page)
			if visitorPath == "" {
				continue
			}

			for _, link := range links {
				if Matches(visitorPath, Normalize(link.URL)) {
					matched[campaignID] = append(matched[campaignID], page)
					seen[page] = true
					break // one hit per visitor URL is enough
				}
			}
		}

		if len(matched[campaignID]) == 0 {
			delete(matched, campaignID)
		}
	}

	return matched
}
