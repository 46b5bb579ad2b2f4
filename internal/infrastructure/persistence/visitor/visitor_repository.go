// Package visitor provides the concrete SQL-based implementations of
// the visitor domain repositories (Visitor, Attribution).
package visitor

import (
	"database/sql"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/database"
)

// SQLVisitorRepository is the SQL-based implementation of the VisitorRepository.
type SQLVisitorRepository struct {
	db *database.DB
}

// NewSQLVisitorRepository creates a new instance of the repository.
func NewSQLVisitorRepository(db *database.DB) *SQLVisitorRepository {
	return &SQLVisitorRepository{db: db}
}

// FindByID retrieves a Visitor by its unique identifier.
func (r *SQLVisitorRepository) FindByID(id string) (*visitor.Visitor, error) {
	const query = `
		SELECT id, client_id, recent_pages, created_at
		FROM visitors
		WHERE id = ?`

	row := r.db.QueryRow(query, id)
	return r.scanVisitor(row)
}

// FindByClientID retrieves visitors belonging to a client, most recent
// first, capped at limit.
func (r *SQLVisitorRepository) FindByClientID(clientID int, limit int) ([]*visitor.Visitor, error) {
	const query = `
		SELECT id, client_id, recent_pages, created_at
		FROM visitors
		WHERE client_id = ?
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.Query(query, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []*visitor.Visitor
	for rows.Next() {
		v, err := r.scanVisitorFromRows(rows)
		if err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}

	return visitors, rows.Err()
}

// scanVisitor is a helper function to scan a sql.Row into a Visitor struct.
func (r *SQLVisitorRepository) scanVisitor(row *sql.Row) (*visitor.Visitor, error) {
	var v visitor.Visitor
	var recentPages sql.NullString
	var createdAtStr string

	err := row.Scan(
		&v.ID,
		&v.ClientID,
		&recentPages,
		&createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}

	if recentPages.Valid {
		v.RecentPagesJSON = recentPages.String
	}

	v.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// scanVisitorFromRows is a helper function to scan from sql.Rows into a Visitor struct.
func (r *SQLVisitorRepository) scanVisitorFromRows(rows *sql.Rows) (*visitor.Visitor, error) {
	var v visitor.Visitor
	var recentPages sql.NullString
	var createdAtStr string

	err := rows.Scan(
		&v.ID,
		&v.ClientID,
		&recentPages,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	if recentPages.Valid {
		v.RecentPagesJSON = recentPages.String
	}

	v.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// parseTimestamp parses stored timestamps, falling back to the SQLite
// default format when RFC3339 fails.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
