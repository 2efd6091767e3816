package main

import (
	"monipack-backend/internal/auth"
	"monipack-backend/internal/handler"
	mid "monipack-backend/internal/middleware"
	"monipack-backend/internal/session"
	"monipack-backend/pkg/config"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting monipack-backend", appConfig.LogConfig()...)

	// Initialize database (runs migrations)
	dbConfig := database.DBConfig{
		DSN:             appConfig.DB.GetDSN(),
		MaxIdleConns:    appConfig.DB.MaxIdleConns,
		MaxOpenConns:    appConfig.DB.MaxOpenConns,
		ConnMaxLifetime: appConfig.DB.ConnMaxLifetime,
		LogLevel:        appConfig.DB.LogLevel,
	}
	if err := database.Initialize(dbConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Ensure the bootstrap super admin exists. A failure here is logged but
	// does not abort startup: the rest of the API still works.
	if err := auth.EnsureSuperAdmin(database.GetDB(), log,
		appConfig.SuperAdmin.Email, appConfig.SuperAdmin.PIN); err != nil {
		log.Error("Super admin bootstrap failed", zap.Error(err))
	}

	// Sweep stale sessions left over from a previous run
	if n, err := session.PurgeExpired(database.GetDB()); err != nil {
		log.Warn("Failed to purge expired sessions", zap.Error(err))
	} else if n > 0 {
		log.Info("Purged expired sessions", zap.Int64("count", n))
	}

	// Wire configuration into the handler and middleware layers
	handler.Init(appConfig)
	mid.InitAuth(appConfig)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Public site routes
	api := e.Group("/api")
	api.GET("/config", handler.GetSiteConfig)
	api.GET("/categories", handler.ListCategories)
	api.GET("/categories/:slug", handler.GetCategoryBySlug)
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:slug", handler.GetProductBySlug)
	api.GET("/banners", handler.ListBanners)
	api.GET("/outlets", handler.ListRetailOutlets)
	api.GET("/warehouses", handler.ListWarehouses)
	api.GET("/careers", handler.ListCareerPosts)
	api.POST("/contact", handler.CreateContactMessage)

	// Auth routes
	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)
	api.GET("/auth/session", handler.GetSession)

	// Admin routes (valid session required)
	admin := e.Group("/api/admin", mid.RequireAuth)
	admin.GET("/stats", handler.GetStats)
	admin.GET("/messages/unread-count", handler.UnreadContactCount)

	admin.GET("/categories", handler.AdminListCategories)
	admin.POST("/categories", handler.CreateCategory)
	admin.PUT("/categories/:id", handler.UpdateCategory)
	admin.DELETE("/categories/:id", handler.DeleteCategory)

	admin.GET("/products", handler.AdminListProducts)
	admin.POST("/products", handler.CreateProduct)
	admin.PUT("/products/:id", handler.UpdateProduct)
	admin.DELETE("/products/:id", handler.DeleteProduct)

	admin.GET("/messages", handler.ListContactMessages)
	admin.PATCH("/messages/:id/read", handler.MarkContactMessageRead)

	// Super admin routes
	super := e.Group("/api/admin", mid.RequireSuperAdmin)
	super.GET("/banners", handler.AdminListBanners)
	super.POST("/banners", handler.CreateBanner)
	super.PUT("/banners/:id", handler.UpdateBanner)
	super.DELETE("/banners/:id", handler.DeleteBanner)

	super.GET("/outlets", handler.AdminListRetailOutlets)
	super.POST("/outlets", handler.CreateRetailOutlet)
	super.PUT("/outlets/:id", handler.UpdateRetailOutlet)
	super.DELETE("/outlets/:id", handler.DeleteRetailOutlet)

	super.GET("/warehouses", handler.AdminListWarehouses)
	super.POST("/warehouses", handler.CreateWarehouse)
	super.PUT("/warehouses/:id", handler.UpdateWarehouse)
	super.DELETE("/warehouses/:id", handler.DeleteWarehouse)

	super.GET("/careers", handler.AdminListCareerPosts)
	super.POST("/careers", handler.CreateCareerPost)
	super.PUT("/careers/:id", handler.UpdateCareerPost)
	super.DELETE("/careers/:id", handler.DeleteCareerPost)

	super.DELETE("/messages/:id", handler.DeleteContactMessage)

	super.GET("/users", handler.ListAdmins)
	super.POST("/users", handler.CreateAdmin)
	super.PUT("/users/:id/pin", handler.ResetAdminPin)
	super.PUT("/users/:id/status", handler.SetAdminStatus)
	super.GET("/deleted", handler.ListDeleted)
	super.POST("/restore/:type/:id", handler.RestoreEntity)
	super.GET("/audit-logs", handler.GetAuditLogs)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
