// Package visitor defines the visitor and attribution entities and the
// repository interfaces for persisting them. These abstract the data
// persistence details, keeping the attribution core decoupled from the
// database.
package visitor

import (
	"encoding/json"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
)

// Visitor is an anonymous tracked visitor belonging to one client account.
// RecentPagesJSON is the raw JSON-encoded array of recently visited URLs as
// written by the external collector.
type Visitor struct {
	ID              string    `json:"id"`
	ClientID        int       `json:"clientId"`
	RecentPagesJSON string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PageSet decodes the visitor's recently visited URLs. Malformed or absent
// payloads yield an empty set, never an error.
func (v *Visitor) PageSet() []string {
	return DecodePageSet(v.RecentPagesJSON)
}

// DecodePageSet decodes a JSON-encoded array of page URLs. Anything that is
// not a valid JSON string array degrades to nil.
func DecodePageSet(raw string) []string {
	if raw == "" {
		return nil
	}
	var pages []string
	if err := json.Unmarshal([]byte(raw), &pages); err != nil {
		return nil
	}
	return pages
}

// Attribution links a visitor to a campaign based on page-visit matches.
// One record exists per (visitor, campaign) pair.
//
// FirstVisitAt and EntryPage are set exactly once at creation and never
// modified. LastVisitAt, MatchedPages, and both counts are fully replaced
// with the latest match snapshot on every update.
type Attribution struct {
	ID               string            `json:"id"`
	VisitorID        string            `json:"visitorId"`
	CampaignID       string            `json:"campaignId"` // string projection of campaign.ID
	AccountID        string            `json:"accountId"`
	FirstVisitAt     time.Time         `json:"firstVisitAt"`
	LastVisitAt      time.Time         `json:"lastVisitAt"`
	EntryPage        *string           `json:"entryPage,omitempty"`
	MatchedPages     []string          `json:"matchedPages"`
	TotalPageViews   int               `json:"totalPageViews"`
	UniquePagesCount int               `json:"uniquePagesCount"`
	IsProspect       bool              `json:"isProspect"`
	CurrentRoom      campaign.RoomType `json:"currentRoom"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// VisitorStats aggregates a visitor's attributions across all campaigns.
type VisitorStats struct {
	VisitorID        string     `json:"visitorId"`
	AttributionCount int        `json:"attributionCount"`
	TotalPageViews   int        `json:"totalPageViews"`
	UniquePagesCount int        `json:"uniquePagesCount"`
	LastVisitAt      *time.Time `json:"lastVisitAt,omitempty"`
}
