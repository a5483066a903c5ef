package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/config"
	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/models"
	"github.com/example/lokamart/internal/services"
	"github.com/example/lokamart/internal/utils"
)

var validate = validator.New()

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db      *gorm.DB
	cfg     *config.Config
	banlist *services.BanlistService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, banlist *services.BanlistService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, banlist: banlist}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	// Admin accounts are provisioned out of band, never self-registered.
	Role   string `json:"role" validate:"omitempty,oneof=customer driver seller"`
	Gender string `json:"gender"`
}

// Register creates a new user account and issues a session token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	email := services.NormalizeEmail(req.Email)

	banned, err := h.banlist.IsBanned(email)
	if err != nil {
		return err
	}
	if banned {
		return fiber.NewError(fiber.StatusForbidden, "Email is banned")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:        email,
		PasswordHash: &passwordHash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
		Gender:       req.Gender,
	}

	// The unique index on email closes the race between two concurrent
	// registrations; there is no check-then-insert here.
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "Email already exists")
		}
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// Login authenticates an existing user. The ban registry is consulted before
// any credential check, so a banned address is rejected even with a valid
// password. Accounts without a password hash skip the password check.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	email := services.NormalizeEmail(req.Email)

	banned, err := h.banlist.IsBanned(email)
	if err != nil {
		return err
	}
	if banned {
		return fiber.NewError(fiber.StatusForbidden, "Email is banned")
	}

	var user models.User
	if err := h.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if user.PasswordHash != nil && !utils.CheckPassword(*user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid password")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

type updateProfileRequest struct {
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	Gender         *string `json:"gender"`
	DefaultAddress *string `json:"default_address"`
}

// UpdateProfile updates mutable profile fields. Email and role stay fixed.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.DefaultAddress != nil {
		updates["default_address"] = *req.DefaultAddress
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}
