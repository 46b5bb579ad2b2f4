package services

import (
	"errors"
	"testing"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
)

type fakeContentLinkRepo struct {
	links map[int][]campaign.ContentLink
	err   error
	calls int
}

func (f *fakeContentLinkRepo) LoadActiveForClient(clientID int) ([]campaign.ContentLink, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.links[clientID], nil
}

func TestBuildForClientGroupsByCampaign(t *testing.T) {
	builtAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc := &CampaignIndexService{now: func() time.Time { return builtAt }}

	repo := &fakeContentLinkRepo{links: map[int][]campaign.ContentLink{
		7: {
			{CampaignID: 2, URL: "/webinar", Room: campaign.RoomSolution},
			{CampaignID: 1, URL: "/blog/launch", Room: campaign.RoomProblem},
			{CampaignID: 1, URL: "/pricing", Room: campaign.RoomOffer},
		},
	}}

	idx, err := svc.buildForClient(repo, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.ClientID != 7 {
		t.Fatalf("expected client 7, got %d", idx.ClientID)
	}
	if !idx.BuiltAt.Equal(builtAt) {
		t.Fatalf("expected build time %v, got %v", builtAt, idx.BuiltAt)
	}
	if idx.CampaignCount() != 2 || idx.LinkCount() != 3 {
		t.Fatalf("expected 2 campaigns with 3 links, got %d/%d", idx.CampaignCount(), idx.LinkCount())
	}

	links := idx.Links(1)
	if len(links) != 2 || links[0].URL != "/blog/launch" || links[1].URL != "/pricing" {
		t.Fatalf("expected load order preserved for campaign 1, got %v", links)
	}
}

func TestBuildForClientEmptyClient(t *testing.T) {
	svc := &CampaignIndexService{now: time.Now}
	repo := &fakeContentLinkRepo{links: map[int][]campaign.ContentLink{}}

	idx, err := svc.buildForClient(repo, 99)
	if err != nil {
		t.Fatalf("expected no error for a client without campaigns, got %v", err)
	}
	if idx.CampaignCount() != 0 || idx.LinkCount() != 0 {
		t.Fatalf("expected empty index, got %d campaigns / %d links", idx.CampaignCount(), idx.LinkCount())
	}
}

func TestBuildForClientPropagatesLoadErrors(t *testing.T) {
	svc := &CampaignIndexService{now: time.Now}
	repo := &fakeContentLinkRepo{err: errors.New("db gone")}

	if _, err := svc.buildForClient(repo, 1); err == nil {
		t.Fatal("expected load error to propagate")
	}
}
