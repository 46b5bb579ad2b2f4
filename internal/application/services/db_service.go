package services

import (
	"fmt"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
)

// DBService handles database connectivity and health checking
type DBService struct {
	logger *logging.ChanneledLogger
}

// NewDBService creates a new database service
func NewDBService(logger *logging.ChanneledLogger) *DBService {
	return &DBService{logger: logger}
}

// CheckStatus performs basic database health check
func (d *DBService) CheckStatus(tenantCtx *tenant.Context) map[string]any {
	result := map[string]any{
		"tenantId":  tenantCtx.TenantID,
		"status":    "checking",
		"timestamp": time.Now(),
	}

	if tenantCtx.Database == nil || tenantCtx.Database.Conn == nil {
		result["status"] = "error"
		result["error"] = "no database connection"
		return result
	}

	// Test with simple query
	var testResult int
	err := tenantCtx.Database.Conn.QueryRow("SELECT 1").Scan(&testResult)
	if err != nil {
		result["status"] = "error"
		result["error"] = fmt.Sprintf("connection test failed: %v", err)
		return result
	}

	requiredTables := []string{
		"campaigns", "campaign_links", "visitors", "visitor_campaigns", "operators",
	}

	tableStatus := make(map[string]bool)
	allTablesExist := true

	for _, table := range requiredTables {
		exists := d.tableExists(tenantCtx, table)
		tableStatus[table] = exists
		if !exists {
			allTablesExist = false
		}
	}

	result["status"] = "healthy"
	if !allTablesExist {
		result["status"] = "degraded"
	}
	result["allTablesExist"] = allTablesExist
	result["tableStatus"] = tableStatus
	result["connection"] = tenantCtx.GetDatabaseInfo()
	result["pool"] = tenant.GetPoolStats()

	return result
}

// tableExists checks whether a table is present in the tenant database.
func (d *DBService) tableExists(tenantCtx *tenant.Context, table string) bool {
	const query = `SELECT name FROM sqlite_master WHERE type='table' AND name = ?`

	var name string
	err := tenantCtx.Database.Conn.QueryRow(query, table).Scan(&name)
	return err == nil && name == table
}
