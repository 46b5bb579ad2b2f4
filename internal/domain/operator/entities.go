// Package operator defines the operator accounts used to authenticate
// against the admin endpoints.
package operator

import "time"

// Operator is a dashboard login. Passwords are stored bcrypt-hashed.
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository defines read access to operator records.
type Repository interface {
	FindByEmail(email string) (*Operator, error)
}
