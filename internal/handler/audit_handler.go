package handler

import (
	"net/http"
	"strconv"

	"monipack-backend/internal/audit"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetAuditLogs returns recent audit entries, most recent first
func GetAuditLogs(c echo.Context) error {
	log := logger.FromContext(c)

	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := audit.Recent(database.GetDB(), limit, nil)
	if err != nil {
		log.Error("Failed to query audit logs", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve audit logs"})
	}

	return c.JSON(http.StatusOK, entries)
}
