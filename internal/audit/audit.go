// Package audit writes the append-only trail of administrative actions.
package audit

import (
	"monipack-backend/internal/model"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Auth-flow actions. Entity mutations use "<ENTITY>_CREATED" style tags
// assembled where the mutation happens.
const (
	ActionLoginSuccess  = "LOGIN_SUCCESS"
	ActionLoginFail     = "LOGIN_FAIL"
	ActionLogout        = "LOGOUT"
	ActionAdminCreated  = "ADMIN_CREATED"
	ActionPinReset      = "ADMIN_PIN_RESET"
	ActionStatusChanged = "ADMIN_STATUS_CHANGED"
)

// Append inserts an audit entry and reports failure to the caller.
// Use it inside transactions that must keep the trail consistent with the
// mutation (soft delete, restore).
func Append(db *gorm.DB, actorAdminID *string, action string, meta map[string]interface{}) error {
	entry := model.AuditLog{
		ActorAdminID: actorAdminID,
		Action:       action,
		Meta:         datatypes.JSONMap(meta),
	}
	if err := db.Create(&entry).Error; err != nil {
		return err
	}
	prometheus.AuditWriteCounter.Inc()
	return nil
}

// Record is the fire-and-forget form used on request paths where the primary
// operation has already been committed. A failed insert is logged and dropped,
// never surfaced to the client.
func Record(db *gorm.DB, actorAdminID *string, action string, meta map[string]interface{}) {
	if err := Append(db, actorAdminID, action, meta); err != nil {
		logger.GetLogger().Error("Failed to write audit log",
			zap.String("action", action),
			zap.Error(err))
	}
}

// Recent returns entries most-recent-first, optionally restricted to one actor
func Recent(db *gorm.DB, limit int, scopeAdminID *string) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := db.Order("created_at DESC").Limit(limit)
	if scopeAdminID != nil {
		query = query.Where("actor_admin_id = ?", *scopeAdminID)
	}

	var entries []model.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
