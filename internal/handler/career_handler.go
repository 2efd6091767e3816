package handler

import (
	"net/http"

	"monipack-backend/internal/audit"
	"monipack-backend/internal/middleware"
	"monipack-backend/internal/model"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CareerPostRequest defines the structure for career post creation/update requests
type CareerPostRequest struct {
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ListCareerPosts returns active job openings for the public careers page
func ListCareerPosts(c echo.Context) error {
	log := logger.FromContext(c)

	var posts []model.CareerPost
	err := database.GetDB().
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		log.Error("Failed to list career posts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve career posts"})
	}

	return c.JSON(http.StatusOK, posts)
}

// AdminListCareerPosts returns all non-deleted career posts
func AdminListCareerPosts(c echo.Context) error {
	log := logger.FromContext(c)

	var posts []model.CareerPost
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		log.Error("Failed to list career posts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve career posts"})
	}

	return c.JSON(http.StatusOK, posts)
}

// CreateCareerPost adds a new job opening
func CreateCareerPost(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	var req CareerPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if req.Title == nil || *req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title is required"})
	}

	post := model.CareerPost{
		Title:     *req.Title,
		IsActive:  true,
		CreatedBy: &actor.AdminID,
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Type != nil {
		post.Type = *req.Type
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.IsActive != nil {
		post.IsActive = *req.IsActive
	}

	db := database.GetDB()
	if err := db.Create(&post).Error; err != nil {
		log.Error("Failed to create career post", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create career post"})
	}

	audit.Record(db, &actor.AdminID, "CAREER_POST_CREATED", map[string]interface{}{
		"id":    post.ID,
		"title": post.Title,
	})

	return c.JSON(http.StatusCreated, post)
}

// UpdateCareerPost applies a partial update
func UpdateCareerPost(c echo.Context) error {
	log := logger.FromContext(c)
	actor := middleware.CurrentSession(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var post model.CareerPost
	if err := db.First(&post, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Career post not found"})
	}

	var req CareerPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Type != nil {
		post.Type = *req.Type
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.IsActive != nil {
		post.IsActive = *req.IsActive
	}

	if err := db.Save(&post).Error; err != nil {
		log.Error("Failed to update career post", zap.Uint("post_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update career post"})
	}

	audit.Record(db, &actor.AdminID, "CAREER_POST_UPDATED", map[string]interface{}{
		"id":    post.ID,
		"title": post.Title,
	})

	return c.JSON(http.StatusOK, post)
}

// DeleteCareerPost moves a career post to the trash (super admin only)
func DeleteCareerPost(c echo.Context) error {
	return deleteByType(c, trash.TypeCareerPost, "Career post")
}
