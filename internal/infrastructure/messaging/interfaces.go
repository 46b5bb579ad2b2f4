// Package messaging defines interfaces for real-time communication.
package messaging

// RunSummary is the outcome of one attribution run, pushed to dashboard clients.
type RunSummary struct {
	ClientID            int     `json:"clientId"`
	VisitorsScanned     int     `json:"visitorsScanned"`
	VisitorsMatched     int     `json:"visitorsMatched"`
	AttributionsCreated int     `json:"attributionsCreated"`
	AttributionsUpdated int     `json:"attributionsUpdated"`
	VisitorsFailed      int     `json:"visitorsFailed"`
	DurationMs          float64 `json:"durationMs"`
	CompletedAt         string  `json:"completedAt"`
}

// FeedPublisher is the surface services use to push live attribution events.
type FeedPublisher interface {
	PublishRunSummary(tenantID string, summary RunSummary)
}
