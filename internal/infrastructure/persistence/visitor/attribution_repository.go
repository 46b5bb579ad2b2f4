package visitor

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/database"
)

// SQLAttributionRepository is the SQL-based implementation of the AttributionRepository.
type SQLAttributionRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLAttributionRepository creates a new instance of the repository.
func NewSQLAttributionRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLAttributionRepository {
	return &SQLAttributionRepository{
		db:     db,
		logger: logger,
	}
}

const attributionColumns = `
	id, visitor_id, campaign_id, account_id, first_visit_at, last_visit_at,
	entry_page, matched_pages, total_page_views, unique_pages_count,
	is_prospect, current_room, created_at, updated_at`

// FindByVisitorAndCampaign retrieves the single attribution record for a
// (visitor, campaign) pair, or nil when none exists.
func (r *SQLAttributionRepository) FindByVisitorAndCampaign(visitorID, campaignID string) (*visitor.Attribution, error) {
	const query = `
		SELECT ` + attributionColumns + `
		FROM visitor_campaigns
		WHERE visitor_id = ? AND campaign_id = ?`

	row := r.db.QueryRow(query, visitorID, campaignID)
	return r.scanAttribution(row)
}

// FindByVisitorID retrieves all attribution records for a visitor, most
// recently visited campaign first.
func (r *SQLAttributionRepository) FindByVisitorID(visitorID string) ([]*visitor.Attribution, error) {
	const query = `
		SELECT ` + attributionColumns + `
		FROM visitor_campaigns
		WHERE visitor_id = ?
		ORDER BY last_visit_at DESC`

	rows, err := r.db.Query(query, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attributions []*visitor.Attribution
	for rows.Next() {
		a, err := r.scanAttributionFromRows(rows)
		if err != nil {
			return nil, err
		}
		attributions = append(attributions, a)
	}

	return attributions, rows.Err()
}

// Create saves a new Attribution to the database.
func (r *SQLAttributionRepository) Create(a *visitor.Attribution) error {
	const query = `
		INSERT INTO visitor_campaigns (` + attributionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing attribution insert", "id", a.ID, "visitorId", a.VisitorID, "campaignId", a.CampaignID)

	matchedPages, err := json.Marshal(a.MatchedPages)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		query,
		a.ID,
		a.VisitorID,
		a.CampaignID,
		a.AccountID,
		a.FirstVisitAt.UTC().Format(time.RFC3339),
		a.LastVisitAt.UTC().Format(time.RFC3339),
		a.EntryPage,
		string(matchedPages),
		a.TotalPageViews,
		a.UniquePagesCount,
		a.IsProspect,
		string(a.CurrentRoom),
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Database().Error("Attribution insert failed", "error", err.Error(), "visitorId", a.VisitorID, "campaignId", a.CampaignID)
		return err
	}

	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), "system")
	return nil
}

// Update replaces the last-touch snapshot of an existing Attribution:
// last visit timestamp, matched pages, and both counts. First-touch fields
// are never written here.
func (r *SQLAttributionRepository) Update(a *visitor.Attribution) error {
	const query = `
		UPDATE visitor_campaigns
		SET last_visit_at = ?, matched_pages = ?, total_page_views = ?,
		    unique_pages_count = ?, updated_at = ?
		WHERE visitor_id = ? AND campaign_id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing attribution update", "visitorId", a.VisitorID, "campaignId", a.CampaignID)

	matchedPages, err := json.Marshal(a.MatchedPages)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		query,
		a.LastVisitAt.UTC().Format(time.RFC3339),
		string(matchedPages),
		a.TotalPageViews,
		a.UniquePagesCount,
		a.UpdatedAt.UTC().Format(time.RFC3339),
		a.VisitorID,
		a.CampaignID,
	)
	if err != nil {
		r.logger.Database().Error("Attribution update failed", "error", err.Error(), "visitorId", a.VisitorID, "campaignId", a.CampaignID)
		return err
	}

	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), "system")
	return nil
}

// Promote writes the room progression of an existing Attribution: prospect
// flag and current room. No other fields are touched.
func (r *SQLAttributionRepository) Promote(a *visitor.Attribution) error {
	const query = `
		UPDATE visitor_campaigns
		SET is_prospect = ?, current_room = ?, updated_at = ?
		WHERE visitor_id = ? AND campaign_id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing attribution promotion", "visitorId", a.VisitorID, "campaignId", a.CampaignID, "room", string(a.CurrentRoom))

	_, err := r.db.Exec(
		query,
		a.IsProspect,
		string(a.CurrentRoom),
		a.UpdatedAt.UTC().Format(time.RFC3339),
		a.VisitorID,
		a.CampaignID,
	)
	if err != nil {
		r.logger.Database().Error("Attribution promotion failed", "error", err.Error(), "visitorId", a.VisitorID, "campaignId", a.CampaignID)
		return err
	}

	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), "system")
	return nil
}

// StatsForVisitor aggregates a visitor's attributions across all campaigns.
func (r *SQLAttributionRepository) StatsForVisitor(visitorID string) (*visitor.VisitorStats, error) {
	const query = `
		SELECT COUNT(*),
		       COALESCE(SUM(total_page_views), 0),
		       COALESCE(SUM(unique_pages_count), 0),
		       MAX(last_visit_at)
		FROM visitor_campaigns
		WHERE visitor_id = ?`

	stats := &visitor.VisitorStats{VisitorID: visitorID}
	var lastVisit sql.NullString

	err := r.db.QueryRow(query, visitorID).Scan(
		&stats.AttributionCount,
		&stats.TotalPageViews,
		&stats.UniquePagesCount,
		&lastVisit,
	)
	if err != nil {
		return nil, err
	}

	if lastVisit.Valid {
		t, err := parseTimestamp(lastVisit.String)
		if err != nil {
			return nil, err
		}
		stats.LastVisitAt = &t
	}

	return stats, nil
}

// scanAttribution is a helper function to scan a sql.Row into an Attribution struct.
func (r *SQLAttributionRepository) scanAttribution(row *sql.Row) (*visitor.Attribution, error) {
	var a visitor.Attribution
	var entryPage sql.NullString
	var matchedPages, currentRoom string
	var firstVisitStr, lastVisitStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&a.ID,
		&a.VisitorID,
		&a.CampaignID,
		&a.AccountID,
		&firstVisitStr,
		&lastVisitStr,
		&entryPage,
		&matchedPages,
		&a.TotalPageViews,
		&a.UniquePagesCount,
		&a.IsProspect,
		&currentRoom,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}

	return r.finishAttribution(&a, entryPage, matchedPages, currentRoom, firstVisitStr, lastVisitStr, createdAtStr, updatedAtStr)
}

// scanAttributionFromRows is a helper function to scan from sql.Rows into an Attribution struct.
func (r *SQLAttributionRepository) scanAttributionFromRows(rows *sql.Rows) (*visitor.Attribution, error) {
	var a visitor.Attribution
	var entryPage sql.NullString
	var matchedPages, currentRoom string
	var firstVisitStr, lastVisitStr, createdAtStr, updatedAtStr string

	err := rows.Scan(
		&a.ID,
		&a.VisitorID,
		&a.CampaignID,
		&a.AccountID,
		&firstVisitStr,
		&lastVisitStr,
		&entryPage,
		&matchedPages,
		&a.TotalPageViews,
		&a.UniquePagesCount,
		&a.IsProspect,
		&currentRoom,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	return r.finishAttribution(&a, entryPage, matchedPages, currentRoom, firstVisitStr, lastVisitStr, createdAtStr, updatedAtStr)
}

// finishAttribution decodes the nullable and encoded columns shared by both scan paths.
func (r *SQLAttributionRepository) finishAttribution(a *visitor.Attribution, entryPage sql.NullString, matchedPages, currentRoom, firstVisitStr, lastVisitStr, createdAtStr, updatedAtStr string) (*visitor.Attribution, error) {
	if entryPage.Valid {
		a.EntryPage = &entryPage.String
	}

	if err := json.Unmarshal([]byte(matchedPages), &a.MatchedPages); err != nil {
		// A corrupt matched_pages payload degrades to an empty set.
		a.MatchedPages = nil
	}

	a.CurrentRoom = campaign.RoomType(currentRoom)

	var err error
	if a.FirstVisitAt, err = parseTimestamp(firstVisitStr); err != nil {
		return nil, err
	}
	if a.LastVisitAt, err = parseTimestamp(lastVisitStr); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}

	return a, nil
}
