package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/lokamart/internal/models"
)

const (
	maxConnectAttempts = 5
	connectBackoff     = 3 * time.Second
)

var db *gorm.DB

// Connect initializes the database connection and runs migrations. Initial
// connectivity is retried a bounded number of times before failing startup;
// there are no retries after that point.
func Connect(dsn string) *gorm.DB {
	if db != nil {
		return db
	}

	var conn *gorm.DB
	var err error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		if err = ensureDatabase(dsn); err == nil {
			conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
				Logger:         logger.Default.LogMode(logger.Info),
				TranslateError: true,
			})
		}
		if err == nil {
			break
		}
		log.Printf("database connect attempt %d/%d failed: %v", attempt, maxConnectAttempts, err)
		if attempt < maxConnectAttempts {
			time.Sleep(connectBackoff)
		}
	}
	if err != nil {
		log.Fatalf("database unreachable after %d attempts: %v", maxConnectAttempts, err)
	}

	if err := migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

func migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.User{},
		&models.BannedEmail{},
		&models.Notification{},
		&models.ProblemReport{},
		&models.UserReport{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
