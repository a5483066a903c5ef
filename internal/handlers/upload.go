package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/services"
)

// UploadHandler manages media upload endpoints.
type UploadHandler struct {
	avatars *services.AvatarService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(avatars *services.AvatarService) *UploadHandler {
	return &UploadHandler{avatars: avatars}
}

// UploadAvatar replaces the caller's avatar with the uploaded image and
// returns its public URL.
func (h *UploadHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read image")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	publicURL, err := h.avatars.ReplaceAvatar(c.Context(), userID, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyImage):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrStorageUnavailable):
			return fiber.NewError(fiber.StatusBadGateway, "failed to store image")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "url": publicURL})
}
