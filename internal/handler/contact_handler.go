package handler

import (
	"net/http"
	"net/mail"

	"monipack-backend/internal/model"
	"monipack-backend/internal/trash"
	"monipack-backend/pkg/database"
	"monipack-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateContactMessage accepts a submission from the public contact form
func CreateContactMessage(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid email address"})
	}

	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := database.GetDB().Create(&msg).Error; err != nil {
		log.Error("Failed to store contact message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to send message"})
	}

	log.Info("Contact message received", zap.Uint("message_id", msg.ID), zap.String("subject", msg.Subject))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Message sent"})
}

// ListContactMessages returns non-deleted messages, newest first
func ListContactMessages(c echo.Context) error {
	log := logger.FromContext(c)

	var msgs []model.ContactMessage
	err := database.GetDB().
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		log.Error("Failed to list contact messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve messages"})
	}

	return c.JSON(http.StatusOK, msgs)
}

// MarkContactMessageRead flags a message as read
func MarkContactMessageRead(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid id"})
	}

	db := database.GetDB()

	var msg model.ContactMessage
	if err := db.First(&msg, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Message not found"})
	}

	if err := db.Model(&msg).Update("is_read", true).Error; err != nil {
		log.Error("Failed to mark message read", zap.Uint("message_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update message"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Marked as read"})
}

// UnreadContactCount returns the badge count for the admin navigation
func UnreadContactCount(c echo.Context) error {
	log := logger.FromContext(c)

	var count int64
	err := database.GetDB().
		Model(&model.ContactMessage{}).
		Where("is_read = ? AND is_deleted = ?", false, false).
		Count(&count).Error
	if err != nil {
		log.Error("Failed to count unread messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to count messages"})
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// DeleteContactMessage moves a message to the trash (super admin only)
func DeleteContactMessage(c echo.Context) error {
	return deleteByType(c, trash.TypeContactMessage, "Message")
}
