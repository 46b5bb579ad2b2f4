package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/security"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
	})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

func TestLogLevelEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := testLogger(t)
	h := NewAdminHandlers(logger)

	r := gin.New()
	r.GET("/levels", h.GetLogLevels)
	r.PUT("/levels", h.PutLogLevel)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/levels", strings.NewReader(`{"channel":"cache","level":"DEBUG"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Levels map[string]string `json:"levels"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Levels["cache"] != "DEBUG" {
		t.Fatalf("expected cache channel at DEBUG, got %q", resp.Levels["cache"])
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/levels", strings.NewReader(`{"channel":"bogus","level":"INFO"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown channel, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/levels", strings.NewReader(`{"channel":"cache","level":"LOUD"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown level, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/levels", strings.NewReader(`{"channel":"cache"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing level, got %d", w.Code)
	}
}

func TestGetPoolInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandlers(testLogger(t))

	r := gin.New()
	r.GET("/pool", h.GetPoolInfo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pool", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp["pools"]; !ok {
		t.Fatalf("expected pools key, got %v", resp)
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := testLogger(t)
	authHandlers := NewAuthHandlers(services.NewAuthService(logger), logger)

	tenantCtx := &tenant.Context{
		TenantID: "t1",
		Config:   &tenant.Config{TenantID: "t1", JWTSecret: "test-secret"},
	}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("tenant", tenantCtx) })
	r.GET("/guarded", authHandlers.AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := security.GenerateOperatorToken("op-1", "admin@example.com", "admin", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	editorToken, err := security.GenerateOperatorToken("op-2", "editor@example.com", "editor", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"admin passes", adminToken, http.StatusOK},
		{"editor rejected", editorToken, http.StatusForbidden},
		{"missing token rejected", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}
