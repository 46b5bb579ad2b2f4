// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/security"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

var errMissingToken = errors.New("missing auth token")

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PostLogin handles POST /api/v1/auth/login - operator credential login
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	start := time.Now()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path, "tenantId", tenantCtx.TenantID)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	result := h.authService.AuthenticateOperator(tenantCtx, req.Email, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	h.logger.Auth().Debug("Login request completed", "tenantId", tenantCtx.TenantID, "duration", time.Since(start))
	c.JSON(http.StatusOK, result)
}

// GetAuthStatus handles GET /api/v1/auth/status - reports token validity
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	claims, err := h.operatorFromRequest(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	h.logger.Auth().Debug("Auth status checked", "tenantId", tenantCtx.TenantID, "operatorId", claims.OperatorID)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"operatorId":    claims.OperatorID,
		"role":          claims.Role,
	})
}

// AuthMiddleware guards operator-only endpoints.
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantCtx, exists := middleware.GetTenantContext(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
			c.Abort()
			return
		}

		claims, err := h.operatorFromRequest(c)
		if err != nil {
			h.logger.Auth().Warn("Unauthorized access attempt", "tenantId", tenantCtx.TenantID, "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set("operator", claims)
		c.Next()
	}
}

// AdminOnlyMiddleware restricts an endpoint to admin operators.
func (h *AuthHandlers) AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.operatorFromRequest(c)
		if err != nil || claims.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *AuthHandlers) operatorFromRequest(c *gin.Context) (*security.OperatorClaims, error) {
	tenantCtx, _ := middleware.GetTenantContext(c)

	token := ""
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := c.Cookie("operator_auth"); err == nil {
		token = cookie
	}
	if token == "" {
		return nil, errMissingToken
	}

	claims, err := h.authService.ValidateOperatorToken(tenantCtx, token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
