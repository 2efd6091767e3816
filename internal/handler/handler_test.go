package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"monipack-backend/internal/auth"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/session"
	"monipack-backend/pkg/config"
	"monipack-backend/pkg/database"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest wires an isolated in-memory store into the package globals the
// handlers read from
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db

	testCfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Env: "test"},
		Session: config.SessionConfig{
			CookieName: "monipack_session",
			TTL:        time.Hour,
		},
		Site: config.SiteConfig{WhatsAppNumber: "15550001111"},
	}
	Init(testCfg)
	middleware.InitAuth(testCfg)

	return db
}

// middleware chains matching the route groups in main
var (
	authOnly  = []echo.MiddlewareFunc{middleware.RequireAuth}
	superOnly = []echo.MiddlewareFunc{middleware.RequireSuperAdmin}
)

func seedAdmin(t *testing.T, db *gorm.DB, email, pin string, role model.AdminRole, active bool) *model.Admin {
	t.Helper()

	hash, err := auth.HashPIN(pin)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	admin := model.Admin{Email: email, Role: role, PinHash: hash, Active: active}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &admin
}

// loginCookie issues a session for the admin and returns its cookie
func loginCookie(t *testing.T, db *gorm.DB, admin *model.Admin) *http.Cookie {
	t.Helper()

	sess, err := session.Create(db, admin, time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: middleware.CookieName(), Value: sess.Token}
}

type testRequest struct {
	method string
	target string
	body   string
	cookie *http.Cookie
	// path parameter pairs, e.g. "id", "3"
	params []string
}

// invoke runs a handler (optionally wrapped in middleware) against a synthetic
// request and returns the recorded response
func invoke(t *testing.T, h echo.HandlerFunc, mw []echo.MiddlewareFunc, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if tr.body != "" {
		reqBody = strings.NewReader(tr.body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(tr.method, tr.target, reqBody)
	if tr.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tr.cookie != nil {
		req.AddCookie(tr.cookie)
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if len(tr.params) > 0 {
		names := make([]string, 0, len(tr.params)/2)
		values := make([]string, 0, len(tr.params)/2)
		for i := 0; i+1 < len(tr.params); i += 2 {
			names = append(names, tr.params[i])
			values = append(values, tr.params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func auditEntries(t *testing.T, db *gorm.DB, action string) []model.AuditLog {
	t.Helper()

	var entries []model.AuditLog
	if err := db.Where("action = ?", action).Find(&entries).Error; err != nil {
		t.Fatalf("query audit log: %v", err)
	}
	return entries
}
