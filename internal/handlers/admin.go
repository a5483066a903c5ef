package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/models"
	"github.com/example/lokamart/internal/services"
)

// AdminHandler manages the ban registry and notification dispatch endpoints.
type AdminHandler struct {
	db      *gorm.DB
	banlist *services.BanlistService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, banlist *services.BanlistService) *AdminHandler {
	return &AdminHandler{db: db, banlist: banlist}
}

type banRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Reason string `json:"reason"`
}

// BanEmail adds or refreshes a ban entry.
func (h *AdminHandler) BanEmail(c *fiber.Ctx) error {
	var req banRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	ban, err := h.banlist.Ban(req.Email, req.Reason)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": ban})
}

// UnbanEmail lifts a ban.
func (h *AdminHandler) UnbanEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email")
	}

	existed, err := h.banlist.Unban(email)
	if err != nil {
		return err
	}
	if !existed {
		return fiber.NewError(fiber.StatusNotFound, "Ban entry not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "email unbanned"})
}

// ListBannedEmails returns every ban entry.
func (h *AdminHandler) ListBannedEmails(c *fiber.Ctx) error {
	bans, err := h.banlist.List()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": bans})
}

type sendNotificationRequest struct {
	UserIdentifier string `json:"user_identifier" validate:"required"`
	Header         string `json:"notify_header" validate:"required"`
	Content        string `json:"notify_content" validate:"required"`
}

// SendNotification records a direct message for one user. Sent means the row
// is durably stored, nothing more.
func (h *AdminHandler) SendNotification(c *fiber.Ctx) error {
	var req sendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	userID, err := uuid.Parse(req.UserIdentifier)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user identifier")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	notification := models.Notification{
		UserID:  user.ID,
		Header:  req.Header,
		Content: req.Content,
	}

	if err := h.db.Create(&notification).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": notification})
}
