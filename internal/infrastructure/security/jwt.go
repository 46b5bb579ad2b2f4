// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// OperatorClaims is the decoded identity carried in an operator token.
type OperatorClaims struct {
	OperatorID string
	Email      string
	Role       string
}

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// OperatorFromClaims extracts the operator identity from JWT claims.
func OperatorFromClaims(claims jwt.MapClaims) (*OperatorClaims, error) {
	operatorID, ok := claims["operatorId"].(string)
	if !ok {
		return nil, errors.New("missing operatorId claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &OperatorClaims{
		OperatorID: operatorID,
		Email:      email,
		Role:       role,
	}, nil
}

// GenerateOperatorToken creates a JWT token for an authenticated operator.
func GenerateOperatorToken(operatorID, email, role, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"operatorId": operatorID,
		"email":      email,
		"role":       role,
		"iat":        time.Now().UTC().Unix(),
		"exp":        time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
