package visitor

// VisitorRepository defines read access to visitor records. Visitor
// creation is owned by the external collector; the attribution core only
// reads.
type VisitorRepository interface {
	FindByID(id string) (*Visitor, error)
	FindByClientID(clientID int, limit int) ([]*Visitor, error)
}

// AttributionRepository defines the operations for persisting Attribution
// entities. Point lookups return (nil, nil) when no record exists.
type AttributionRepository interface {
	FindByVisitorAndCampaign(visitorID, campaignID string) (*Attribution, error)
	FindByVisitorID(visitorID string) ([]*Attribution, error)
	Create(a *Attribution) error
	Update(a *Attribution) error
	Promote(a *Attribution) error
	StatsForVisitor(visitorID string) (*VisitorStats, error)
}
