package handler

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/auth"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/session"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListAdmins returns all admin accounts, oldest first. PIN hashes are never
// serialized.
func ListAdmins(c echo.Context) error {
	log := logger.FromContext(c)

	var admins []model.Admin
	if err := database.GetDB().Order("created_at ASC").Find(&admins).Error; err != nil {
		log.Error("Failed to list admins", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve admins"})
	}

	return c.JSON(http.StatusOK, admins)
}

// CreateAdmin registers a new regular admin. Only the bootstrap path can
// create a SUPER_ADMIN, so the role is not accepted from the request.
func CreateAdmin(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req struct {
		Email string `json:"email"`
		PIN   string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email address"})
	}
	if !auth.ValidPIN(req.PIN) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "PIN must be exactly 6 digits"})
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Admin{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Admin with this email already exists"})
	}

	hash, err := auth.HashPIN(req.PIN)
	if err != nil {
		log.Error("Failed to hash PIN", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create admin"})
	}

	admin := model.Admin{
		Email:     email,
		Role:      model.RoleAdmin,
		PinHash:   hash,
		Active:    true,
		CreatedBy: &actor.AdminID,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Error("Failed to create admin", zap.String("email", email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create admin"})
	}

	audit.Record(db, &actor.AdminID, audit.ActionAdminCreated, map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})

	log.Info("Admin created", zap.String("email", admin.Email), zap.String("by", actor.Email))
	return c.JSON(http.StatusCreated, admin)
}

// ResetAdminPin sets a new PIN for a non-super-admin account
func ResetAdminPin(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var admin model.Admin
	if err := database.GetDB().First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if admin.IsSuperAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Cannot reset a super admin's PIN"})
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}
	if !auth.ValidPIN(req.PIN) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "PIN must be exactly 6 digits"})
	}

	hash, err := auth.HashPIN(req.PIN)
	if err != nil {
		log.Error("Failed to hash PIN", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to reset PIN"})
	}

	db := database.GetDB()
	if err := db.Model(&admin).Updates(map[string]interface{}{
		"pin_hash":   hash,
		"updated_at": time.Now(),
	}).Error; err != nil {
		log.Error("Failed to reset PIN", zap.String("admin_id", admin.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to reset PIN"})
	}

	audit.Record(db, &actor.AdminID, audit.ActionPinReset, map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})

	log.Info("Admin PIN reset", zap.String("email", admin.Email), zap.String("by", actor.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "PIN updated"})
}

// SetAdminStatus activates or deactivates a non-super-admin account.
// Deactivation destroys the admin's sessions so the login-time role snapshot
// cannot outlive the account.
func SetAdminStatus(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var admin model.Admin
	if err := database.GetDB().First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if admin.IsSuperAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Cannot deactivate a super admin"})
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "active flag is required"})
	}

	db := database.GetDB()
	if err := db.Model(&admin).Updates(map[string]interface{}{
		"active":     *req.Active,
		"updated_at": time.Now(),
	}).Error; err != nil {
		log.Error("Failed to update admin status", zap.String("admin_id", admin.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update status"})
	}

	if !*req.Active {
		if err := session.DestroyAllForAdmin(db, admin.ID); err != nil {
			log.Error("Failed to destroy sessions of deactivated admin",
				zap.String("admin_id", admin.ID), zap.Error(err))
		}
	}

	audit.Record(db, &actor.AdminID, audit.ActionStatusChanged, map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"active":   *req.Active,
	})

	admin.Active = *req.Active
	log.Info("Admin status changed",
		zap.String("email", admin.Email),
		zap.Bool("active", *req.Active),
		zap.String("by", actor.Email))
	return c.JSON(http.StatusOK, admin)
}
