// Package campaign provides the concrete SQL-based implementation of the
// campaign domain repository (ContentLink).
package campaign

import (
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/database"
)

// SQLContentLinkRepository is the SQL-based implementation of the ContentLinkRepository.
type SQLContentLinkRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLContentLinkRepository creates a new instance of the repository.
func NewSQLContentLinkRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLContentLinkRepository {
	return &SQLContentLinkRepository{
		db:     db,
		logger: logger,
	}
}

// LoadActiveForClient retrieves the active content links for every campaign
// belonging to the client whose end date is unset or not yet passed. Links
// are ordered by campaign, room depth, then display order. A client with no
// campaigns yields an empty slice, not an error.
func (r *SQLContentLinkRepository) LoadActiveForClient(clientID int) ([]campaign.ContentLink, error) {
	const query = `
		SELECT cl.campaign_id, cl.url, cl.title, cl.room, cl.display_order, cl.active
		FROM campaign_links cl
		JOIN campaigns c ON c.id = cl.campaign_id
		WHERE c.client_id = ?
		  AND cl.active = 1
		  AND (c.end_date IS NULL OR date(c.end_date) >= date('now'))
		ORDER BY cl.campaign_id,
		         CASE cl.room WHEN 'problem' THEN 0 WHEN 'solution' THEN 1 WHEN 'offer' THEN 2 ELSE 3 END,
		         cl.display_order`

	start := time.Now()
	r.logger.Database().Debug("Loading active content links", "clientId", clientID)

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		r.logger.Database().Error("Failed to load content links", "error", err.Error(), "clientId", clientID)
		return nil, err
	}
	defer rows.Close()

	var links []campaign.ContentLink
	for rows.Next() {
		var link campaign.ContentLink
		var campaignID int
		var room string

		if err := rows.Scan(&campaignID, &link.URL, &link.Title, &room, &link.DisplayOrder, &link.Active); err != nil {
			return nil, err
		}
		link.CampaignID = campaign.ID(campaignID)
		link.Room = campaign.RoomType(room)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	r.logger.Database().Debug("Content links loaded", "clientId", clientID, "count", len(links), "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, query, duration, "system")

	return links, nil
}
