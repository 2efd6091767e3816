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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// ListCategories returns the active, non-deleted categories for the public site
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	var cats []model.Category
	err := database.GetDB().
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("sort_order ASC").
		Find(&cats).Error
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, cats)
}

// GetCategoryBySlug returns one public category
func GetCategoryBySlug(c echo.Context) error {
	slug := c.Param("slug")

	var cat model.Category
	err := database.GetDB().Where("slug = ?", slug).First(&cat).Error
	if err != nil || !cat.IsActive || cat.IsDeleted {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	return c.JSON(http.StatusOK, cat)
}

// AdminListCategories returns all non-deleted categories, inactive included
func AdminListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	var cats []model.Category
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("sort_order ASC").
		Find(&cats).Error
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, cats)
}

// CreateCategory adds a new category, generating the slug from the name when absent
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	slug := ""
	if req.Slug != nil {
		slug = *req.Slug
	}
	if slug == "" {
		slug = slugify(*req.Name)
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Category{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Category with this slug already exists"})
	}

	cat := model.Category{
		Name:      *req.Name,
		Slug:      slug,
		IsActive:  true,
		CreatedBy: &actor.AdminID,
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.Image != nil {
		cat.Image = *req.Image
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := db.Create(&cat).Error; err != nil {
		log.Error("Failed to create category", zap.String("name", cat.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create category"})
	}

	audit.Record(db, &actor.AdminID, "CATEGORY_CREATED", map[string]interface{}{
		"id":   cat.ID,
		"name": cat.Name,
	})

	log.Info("Category created", zap.Uint("category_id", cat.ID), zap.String("name", cat.Name))
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory applies a partial update to an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var cat model.Category
	if err := db.First(&cat, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Slug != nil && *req.Slug != cat.Slug {
		var count int64
		db.Model(&model.Category{}).Where("slug = ? AND id != ?", *req.Slug, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Category with this slug already exists"})
		}
		cat.Slug = *req.Slug
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.Image != nil {
		cat.Image = *req.Image
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := db.Save(&cat).Error; err != nil {
		log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update category"})
	}

	audit.Record(db, &actor.AdminID, "CATEGORY_UPDATED", map[string]interface{}{
		"id":   cat.ID,
		"name": cat.Name,
	})

	log.Info("Category updated", zap.Uint("category_id", cat.ID), zap.String("name", cat.Name))
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory moves a category to the trash. Regular admins may only
// delete categories they created.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	switch err := trash.SoftDelete(database.GetDB(), trash.TypeCategory, id, actor); err {
	case nil:
	case trash.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	case trash.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "You can only delete categories you created"})
	default:
		log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete category"})
	}

	prometheus.RecordSoftDelete(string(trash.TypeCategory))
	log.Info("Category moved to trash", zap.Uint("category_id", id), zap.String("by", actor.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted"})
}
