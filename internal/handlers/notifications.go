package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/models"
)

// NotificationHandler serves the authenticated user's notification feed.
type NotificationHandler struct {
	db *gorm.DB
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// ListMine returns the caller's notifications, newest first.
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var notifications []models.Notification
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": notifications})
}
