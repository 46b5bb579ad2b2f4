// Package campaign defines campaign content entities and the repository
// interface used to load them. Campaign configuration itself is owned by
// the admin surface; this package is read-only over it.
package campaign

import (
	"sort"
	"strconv"
	"time"
)

// ID is a campaign identifier. Campaign settings key campaigns by integer,
// while the attribution ledger persists the identifier as a string. The type
// carries both projections so neither side coerces silently.
type ID int

// Int returns the numeric projection used by campaign settings.
func (id ID) Int() int { return int(id) }

// String returns the storage projection used by the attribution ledger.
func (id ID) String() string { return strconv.Itoa(int(id)) }

// ParseID parses the storage projection back into a campaign ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// RoomType is a pipeline stage representing prospect intent level.
type RoomType string

const (
	RoomProblem  RoomType = "problem"
	RoomSolution RoomType = "solution"
	RoomOffer    RoomType = "offer"

	// RoomNone is the sentinel for attributions not yet assigned a room.
	RoomNone RoomType = "none"
)

// Rank orders rooms by pipeline depth for display ordering.
func (r RoomType) Rank() int {
	switch r {
	case RoomProblem:
		return 0
	case RoomSolution:
		return 1
	case RoomOffer:
		return 2
	default:
		return 3
	}
}

// ContentLink is one piece of trackable campaign content used as a matching
// target for attribution.
type ContentLink struct {
	CampaignID   ID       `json:"campaignId"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Room         RoomType `json:"room"`
	DisplayOrder int      `json:"displayOrder"`
	Active       bool     `json:"active"`
}

// ContentLinkIndex maps campaign IDs to their ordered active content links,
// scoped to one client and one as-of load. It is an explicit value handed to
// the matcher; it is never consulted implicitly, so a caller can never match
// against a stale or wrong-client index by accident.
type ContentLinkIndex struct {
	ClientID int
	BuiltAt  time.Time
	links    map[ID][]ContentLink
}

// NewContentLinkIndex creates an empty index for one client.
func NewContentLinkIndex(clientID int, builtAt time.Time) *ContentLinkIndex {
	return &ContentLinkIndex{
		ClientID: clientID,
		BuiltAt:  builtAt,
		links:    make(map[ID][]ContentLink),
	}
}

// Add appends a content link under its campaign, preserving insertion order.
func (idx *ContentLinkIndex) Add(link ContentLink) {
	idx.links[link.CampaignID] = append(idx.links[link.CampaignID], link)
}

// Links returns the ordered content links for a campaign, or nil if the
// campaign is not present.
func (idx *ContentLinkIndex) Links(id ID) []ContentLink {
	return idx.links[id]
}

// Campaigns returns the campaign IDs present in the index in ascending
// order, so iteration over the index is deterministic.
func (idx *ContentLinkIndex) Campaigns() []ID {
	ids := make([]ID, 0, len(idx.links))
	for id := range idx.links {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CampaignCount returns the number of campaigns with at least one link.
func (idx *ContentLinkIndex) CampaignCount() int { return len(idx.links) }

// LinkCount returns the total number of content links in the index.
func (idx *ContentLinkIndex) LinkCount() int {
	total := 0
	for _, ls := range idx.links {
		total += len(ls)
	}
	return total
}
