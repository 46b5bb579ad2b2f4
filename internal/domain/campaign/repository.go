package campaign

// ContentLinkRepository defines read access to campaign content links.
// Implementations return only links for active campaigns of the given
// client whose end date is unset or not yet passed, ordered by campaign,
// room depth, then display order.
type ContentLinkRepository interface {
	LoadActiveForClient(clientID int) ([]ContentLink, error)
}
