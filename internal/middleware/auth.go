package middleware

import (
	"net/http"

	"monipack-backend/internal/model"
	"monipack-backend/internal/session"
	"monipack-backend/pkg/config"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionContextKey = "admin_session"

var cookieName = "monipack_session"

// InitAuth wires the configured session cookie name into the middleware
func InitAuth(cfg *config.Config) {
	cookieName = cfg.Session.CookieName
}

// CookieName returns the session cookie name in use
func CookieName() string {
	return cookieName
}

// CurrentSession returns the session placed in context by RequireAuth
func CurrentSession(c echo.Context) *model.Session {
	sess, _ := c.Get(sessionContextKey).(*model.Session)
	return sess
}

// RequireAuth resolves the session cookie to a live server-side session.
// Role and active status are login-time snapshots; deactivating an admin
// destroys their sessions, so no per-request admin re-read is done here.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		cookie, err := c.Cookie(cookieName)
		if err != nil {
			prometheus.RecordAuthError("missing_cookie")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
		}

		sess, err := session.Get(database.GetDB(), cookie.Value)
		if err != nil {
			if err != session.ErrNotFound {
				log.Error("Failed to load session", zap.Error(err))
			}
			prometheus.RecordAuthError("invalid_session")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
		}

		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// RequireSuperAdmin gates routes on the session's snapshotted role
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireAuth(func(c echo.Context) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsSuperAdmin() {
			prometheus.RecordAuthError("insufficient_role")
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden: Super admin access required"})
		}
		return next(c)
	})
}
