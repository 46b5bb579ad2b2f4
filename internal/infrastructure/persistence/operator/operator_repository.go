// Package operator provides the concrete SQL-based implementation of the
// operator repository.
package operator

import (
	"database/sql"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/operator"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/database"
)

// SQLOperatorRepository is the SQL-based implementation of the operator Repository.
type SQLOperatorRepository struct {
	db *database.DB
}

// NewSQLOperatorRepository creates a new instance of the repository.
func NewSQLOperatorRepository(db *database.DB) *SQLOperatorRepository {
	return &SQLOperatorRepository{db: db}
}

// FindByEmail retrieves an operator by email, or nil when none exists.
func (r *SQLOperatorRepository) FindByEmail(email string) (*operator.Operator, error) {
	const query = `
		SELECT id, email, password_hash, role, created_at
		FROM operators
		WHERE email = ?`

	var o operator.Operator
	var createdAtStr string

	err := r.db.QueryRow(query, email).Scan(
		&o.ID,
		&o.Email,
		&o.PasswordHash,
		&o.Role,
		&createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}

	o.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &o, nil
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
