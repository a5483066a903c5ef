package handlers_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/lokamart/internal/config"
	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/routes"
	"github.com/example/lokamart/internal/utils"
)

// stubStore is an in-memory ObjectStore standing in for MinIO.
type stubStore struct {
	putErr  error
	putKeys []string
	deleted []string
}

const stubBaseURL = "http://store/lokamart/"

func (s *stubStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.putKeys = append(s.putKeys, key)
	return nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubStore) PublicURL(key string) string {
	return stubBaseURL + key
}

func (s *stubStore) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, stubBaseURL) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, stubBaseURL)
	return key, key != ""
}

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *config.Config, *stubStore) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	store := &stubStore{}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	routes.Register(app, db, cfg, store)

	return app, mock, cfg, store
}

func authToken(t *testing.T, cfg *config.Config, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.JWTSecret, userID, role, cfg.TokenExpires)
	require.NoError(t, err)
	return token
}

// expectAdminRoleCheck satisfies the per-request role re-verification done by
// the admin middleware.
func expectAdminRoleCheck(mock sqlmock.Sqlmock, role string) {
	mock.ExpectQuery(`SELECT "role" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(role))
}
