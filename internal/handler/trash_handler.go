package handler

import (
	"net/http"

	"monipack-backend/internal/middleware"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListDeleted returns the aggregated trash view across all entity types
func ListDeleted(c echo.Context) error {
	log := logger.FromContext(c)

	items, err := trash.ListDeleted(database.GetDB())
	if err != nil {
		log.Error("Failed to load trash view", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve deleted items"})
	}

	return c.JSON(http.StatusOK, items)
}

// RestoreEntity brings one soft-deleted entity back by type and id
func RestoreEntity(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	entityType, err := trash.ParseType(c.Param("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unknown entity type"})
	}

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	switch err := trash.Restore(database.GetDB(), entityType, id, actor); err {
	case nil:
	case trash.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Entity not found"})
	case trash.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Super admin access required"})
	default:
		log.Error("Failed to restore entity",
			zap.String("entity", string(entityType)),
			zap.Uint("id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to restore entity"})
	}

	prometheus.RecordRestore(string(entityType))
	log.Info("Entity restored",
		zap.String("entity", string(entityType)),
		zap.Uint("id", id),
		zap.String("by", actor.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Restored"})
}
