// Package services provides application-level orchestration services
package services

import (
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/operator"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/security"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
	"github.com/RoomReachHQ/roomreach-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles operator authentication workflows and JWT operations
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthenticateOperator validates operator credentials and generates a JWT.
func (a *AuthService) AuthenticateOperator(tenantCtx *tenant.Context, email, password string) *AuthResult {
	return a.authenticate(tenantCtx.OperatorRepo(), tenantCtx.Config.JWTSecret, tenantCtx.TenantID, email, password)
}

// ValidateOperatorToken decodes an operator token and returns its claims.
func (a *AuthService) ValidateOperatorToken(tenantCtx *tenant.Context, tokenString string) (*security.OperatorClaims, error) {
	claims, err := security.ValidateJWT(tokenString, tenantCtx.Config.JWTSecret)
	if err != nil {
		return nil, err
	}
	return security.OperatorFromClaims(claims)
}

func (a *AuthService) authenticate(repo operator.Repository, jwtSecret, tenantID, email, password string) *AuthResult {
	start := time.Now()

	op, err := repo.FindByEmail(email)
	if err != nil {
		a.logger.Auth().Error("Operator lookup failed", "error", err.Error(), "tenantId", tenantID)
		return &AuthResult{Success: false, Error: "Authentication unavailable"}
	}

	if op == nil || bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		a.logger.Auth().Warn("Operator login rejected", "tenantId", tenantID, "email", email)
		return &AuthResult{Success: false, Error: "Invalid credentials"}
	}

	token, err := security.GenerateOperatorToken(op.ID, op.Email, op.Role, jwtSecret, config.OperatorTokenTTL)
	if err != nil {
		a.logger.Auth().Error("Token generation failed", "error", err.Error(), "tenantId", tenantID)
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}

	a.logger.Auth().Info("Operator authenticated",
		"tenantId", tenantID,
		"operatorId", op.ID,
		"role", op.Role,
		"duration", time.Since(start))

	return &AuthResult{Token: token, Role: op.Role, Success: true}
}
