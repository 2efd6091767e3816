package handler

import (
	"net/http"

	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/stats"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetStats serves the dashboard figures. Super admins get the global
// aggregate plus a per-admin breakdown; regular admins only their own.
func GetStats(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)
	db := database.GetDB()

	if !actor.IsSuperAdmin() {
		personal, err := stats.ForAdmin(db, actor.AdminID)
		if err != nil {
			log.Error("Failed to compute admin stats", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to compute stats"})
		}
		return c.JSON(http.StatusOK, echo.Map{"personal": personal})
	}

	global, err := stats.Global(db)
	if err != nil {
		log.Error("Failed to compute global stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to compute stats"})
	}

	var admins []model.Admin
	if err := db.Order("created_at ASC").Find(&admins).Error; err != nil {
		log.Error("Failed to list admins for stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to compute stats"})
	}

	breakdown := make([]echo.Map, 0, len(admins))
	for i := range admins {
		s, err := stats.ForAdmin(db, admins[i].ID)
		if err != nil {
			log.Error("Failed to compute per-admin stats",
				zap.String("admin_id", admins[i].ID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to compute stats"})
		}
		breakdown = append(breakdown, echo.Map{"admin": admins[i], "stats": s})
	}

	return c.JSON(http.StatusOK, echo.Map{"global": global, "adminStats": breakdown})
}
