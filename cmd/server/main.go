package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/lokamart/internal/config"
	"github.com/example/lokamart/internal/database"
	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/routes"
	"github.com/example/lokamart/internal/storage"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("bucket setup failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Lokamart Backend",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, store)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
