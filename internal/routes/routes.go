package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/config"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	uploadHandler *handlers.UploadHandler,
	chartHandler *handlers.ChartHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes resolve the token to a persisted user - apply
	// middleware to individual routes so public routes stay public
	jwt := middleware.JWTProtected(cfg)
	usr := middleware.UserRequired(db)

	api.Get("/auth/me", jwt, usr, authHandler.Me)

	api.Post("/upload", jwt, usr, uploadHandler.Upload)
	api.Get("/upload/history", jwt, usr, uploadHandler.History)
	api.Get("/upload/:id", jwt, usr, uploadHandler.Get)
	api.Delete("/upload/:id", jwt, usr, uploadHandler.Delete)

	api.Post("/charts", jwt, usr, chartHandler.Create)
	api.Get("/charts", jwt, usr, chartHandler.List)
	api.Get("/charts/:id", jwt, usr, chartHandler.Get)
	api.Delete("/charts/:id", jwt, usr, chartHandler.Delete)

	// Admin panel
	admin := api.Group("/admin", jwt, usr, middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/stats", adminHandler.Stats)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
