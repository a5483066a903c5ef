package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("image", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func uploadAvatar(t *testing.T, app *fiber.App, token string) (int, map[string]interface{}) {
	t.Helper()

	buf, contentType := multipartImage(t)
	req := httptest.NewRequest("POST", "/api/upload/avatar", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestUploadAvatar(t *testing.T) {
	userID := uuid.New()

	t.Run("replaces previous avatar and deletes old object", func(t *testing.T) {
		app, mock, cfg, store := newTestApp(t)

		oldURL := stubBaseURL + "avatar/old.png"
		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "avatar_url"}).
				AddRow(userID.String(), "alice@example.com", oldURL))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		status, body := uploadAvatar(t, app, authToken(t, cfg, userID, "customer"))

		assert.Equal(t, fiber.StatusOK, status)
		url := body["url"].(string)
		assert.NotEmpty(t, url)
		assert.NotEqual(t, oldURL, url)
		assert.Contains(t, store.deleted, "avatar/old.png")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first avatar deletes nothing", func(t *testing.T) {
		app, mock, cfg, store := newTestApp(t)

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "avatar_url"}).
				AddRow(userID.String(), "alice@example.com", nil))
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		status, _ := uploadAvatar(t, app, authToken(t, cfg, userID, "customer"))

		assert.Equal(t, fiber.StatusOK, status)
		assert.Empty(t, store.deleted)
	})

	t.Run("missing file", func(t *testing.T) {
		app, mock, cfg, _ := newTestApp(t)

		req := httptest.NewRequest("POST", "/api/upload/avatar", nil)
		req.Header.Set("Authorization", "Bearer "+authToken(t, cfg, userID, "customer"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store outage is a bad gateway and leaves the pointer alone", func(t *testing.T) {
		app, mock, cfg, store := newTestApp(t)
		store.putErr = errors.New("connection refused")

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "avatar_url"}).
				AddRow(userID.String(), "alice@example.com", nil))

		status, body := uploadAvatar(t, app, authToken(t, cfg, userID, "customer"))

		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Equal(t, "failed to store image", body["error"])
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
