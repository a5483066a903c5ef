package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/lokamart/internal/config"
	"github.com/example/lokamart/internal/utils"
)

func newAuthTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/protected", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		id, _ := GetCurrentUserID(c)
		role, _ := GetCurrentUserRole(c)
		return c.JSON(fiber.Map{"id": id.String(), "role": role})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	app.Get("/upstream", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "failed to store image")
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}
	app := newAuthTestApp(cfg)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, userID, "seller", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, userID.String(), body["id"])
		assert.Equal(t, "seller", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, userID, "seller", -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with rotated secret", func(t *testing.T) {
		token, err := utils.GenerateToken("old-secret", userID, "seller", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestErrorHandlerMasksInternalErrors(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newAuthTestApp(cfg)

	req := httptest.NewRequest("GET", "/boom", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(raw))
}

func TestErrorHandlerKeepsExplicit5xxMessages(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newAuthTestApp(cfg)

	req := httptest.NewRequest("GET", "/upstream", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"failed to store image"}`, string(raw))
}
