package handler

import (
	"net/http"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"
	"monipack-backend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BannerRequest defines the structure for banner creation/update requests
type BannerRequest struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Image     *string `json:"image"`
	LinkURL   *string `json:"link_url"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// ListBanners returns active banners for the public home page
func ListBanners(c echo.Context) error {
	log := logger.FromContext(c)

	var banners []model.Banner
	err := database.GetDB().
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("sort_order ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		log.Error("Failed to list banners", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve banners"})
	}

	return c.JSON(http.StatusOK, banners)
}

// AdminListBanners returns all non-deleted banners
func AdminListBanners(c echo.Context) error {
	log := logger.FromContext(c)

	var banners []model.Banner
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("sort_order ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		log.Error("Failed to list banners", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve banners"})
	}

	return c.JSON(http.StatusOK, banners)
}

// CreateBanner adds a new home-page banner
func CreateBanner(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if req.Image == nil || *req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image is required"})
	}

	banner := model.Banner{
		Image:     *req.Image,
		IsActive:  true,
		CreatedBy: &actor.AdminID,
	}
	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.SortOrder != nil {
		banner.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	db := database.GetDB()
	if err := db.Create(&banner).Error; err != nil {
		log.Error("Failed to create banner", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create banner"})
	}

	audit.Record(db, &actor.AdminID, "BANNER_CREATED", map[string]interface{}{
		"id":    banner.ID,
		"title": banner.Title,
	})

	log.Info("Banner created", zap.Uint("banner_id", banner.ID))
	return c.JSON(http.StatusCreated, banner)
}

// UpdateBanner applies a partial update to a banner
func UpdateBanner(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var banner model.Banner
	if err := db.First(&banner, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Banner not found"})
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.Image != nil {
		banner.Image = *req.Image
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.SortOrder != nil {
		banner.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := db.Save(&banner).Error; err != nil {
		log.Error("Failed to update banner", zap.Uint("banner_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update banner"})
	}

	audit.Record(db, &actor.AdminID, "BANNER_UPDATED", map[string]interface{}{
		"id":    banner.ID,
		"title": banner.Title,
	})

	return c.JSON(http.StatusOK, banner)
}

// DeleteBanner moves a banner to the trash (super admin only)
func DeleteBanner(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	switch err := trash.SoftDelete(database.GetDB(), trash.TypeBanner, id, actor); err {
	case nil:
	case trash.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Banner not found"})
	case trash.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Super admin access required"})
	default:
		log.Error("Failed to delete banner", zap.Uint("banner_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete banner"})
	}

	prometheus.RecordSoftDelete(string(trash.TypeBanner))
	return c.JSON(http.StatusOK, echo.Map{"message": "Banner deleted"})
}
