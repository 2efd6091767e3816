package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/auth"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/session"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// publicAdmin strips an admin down to the fields safe to return to the client
func publicAdmin(a *model.Admin) echo.Map {
	return echo.Map{
		"id":    a.ID,
		"email": a.Email,
		"role":  a.Role,
	}
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.IsProduction(),
	}
}

// Login validates an email+PIN pair and issues a session cookie
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email string `json:"email"`
		PIN   string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	// Reject malformed PINs before touching the store
	if !auth.ValidPIN(req.PIN) {
		prometheus.RecordAuthError("invalid_pin_format")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "PIN must be exactly 6 digits"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := database.GetDB()

	var admin model.Admin
	err := db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Same message as a wrong PIN: no account-enumeration signal
		prometheus.RecordAuthError("unknown_email")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or PIN"})
	}
	if err != nil {
		log.Error("Failed to look up admin", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}

	if !admin.Active {
		prometheus.RecordAuthError("account_disabled")
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Account disabled. Contact a super admin."})
	}

	if !auth.CheckPIN(admin.PinHash, req.PIN) {
		prometheus.RecordAuthError("invalid_pin")
		audit.Record(db, nil, audit.ActionLoginFail, map[string]interface{}{"email": email})
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or PIN"})
	}

	now := time.Now()
	if err := db.Model(&admin).Updates(map[string]interface{}{
		"last_login_at": now,
		"updated_at":    now,
	}).Error; err != nil {
		log.Error("Failed to update last login", zap.String("email", email), zap.Error(err))
	}

	sess, err := session.Create(db, &admin, cfg.Session.TTL)
	if err != nil {
		log.Error("Failed to create session", zap.String("email", email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}

	audit.Record(db, &admin.ID, audit.ActionLoginSuccess, map[string]interface{}{"email": admin.Email})
	prometheus.LoginSuccessCounter.Inc()

	c.SetCookie(sessionCookie(sess.Token, int(cfg.Session.TTL.Seconds())))

	log.Info("Admin logged in",
		zap.String("email", admin.Email),
		zap.String("role", string(admin.Role)))
	return c.JSON(http.StatusOK, echo.Map{"admin": publicAdmin(&admin)})
}

// GetSession reports the current session state without requiring auth
func GetSession(c echo.Context) error {
	cookie, err := c.Cookie(middleware.CookieName())
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}

	sess, err := session.Get(database.GetDB(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"admin": echo.Map{
			"id":    sess.AdminID,
			"email": sess.Email,
			"role":  sess.Role,
		},
	})
}

// Logout destroys the server-side session. It succeeds even when the session
// is already gone, so repeated logouts are harmless.
func Logout(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	if cookie, err := c.Cookie(middleware.CookieName()); err == nil {
		if sess, err := session.Get(db, cookie.Value); err == nil {
			audit.Record(db, &sess.AdminID, audit.ActionLogout, map[string]interface{}{"email": sess.Email})
			if err := session.Destroy(db, sess.Token); err != nil {
				log.Error("Failed to destroy session", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Logout failed"})
			}
			log.Info("Admin logged out", zap.String("email", sess.Email))
		}
	}

	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}
