package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lokamart/internal/config"
	"github.com/example/lokamart/internal/handlers"
	"github.com/example/lokamart/internal/middleware"
	"github.com/example/lokamart/internal/services"
	"github.com/example/lokamart/internal/storage"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, store storage.ObjectStore) {
	banlist := services.NewBanlistService(db)
	avatars := services.NewAvatarService(db, store)

	authHandler := handlers.NewAuthHandler(db, cfg, banlist)
	uploadHandler := handlers.NewUploadHandler(avatars)
	adminHandler := handlers.NewAdminHandler(db, banlist)
	reportHandler := handlers.NewReportHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/profile", authHandler.UpdateProfile)
	protected.Post("/upload/avatar", uploadHandler.UploadAvatar)
	protected.Get("/notifications", notificationHandler.ListMine)
	protected.Post("/reports/problem", reportHandler.CreateProblemReport)
	protected.Post("/reports/user", reportHandler.CreateUserReport)

	// Admin routes; role is re-verified against the database per request
	admin := protected.Group("/admin", middleware.RequireAdmin(db))
	admin.Post("/users/ban", adminHandler.BanEmail)
	admin.Delete("/users/ban/:email", adminHandler.UnbanEmail)
	admin.Get("/banned-emails", adminHandler.ListBannedEmails)
	admin.Post("/notifications/send", adminHandler.SendNotification)
	admin.Get("/reports/:type", reportHandler.ListReports)
	admin.Get("/reports/:type/:id", reportHandler.GetReport)
	admin.Patch("/reports/:type/:id/read", reportHandler.ToggleRead)
	admin.Delete("/reports/:type/:id", reportHandler.DeleteReport)
}
