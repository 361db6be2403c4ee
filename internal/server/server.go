// Package server assembles the Fiber application: repositories, services,
// handlers and the middleware chain.
package server

import (
	"errors"

	"github.com/vitokorn/buy-me-a-gift/internal/config"
	"github.com/vitokorn/buy-me-a-gift/internal/handlers"
	"github.com/vitokorn/buy-me-a-gift/internal/middleware"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"
	"github.com/vitokorn/buy-me-a-gift/internal/services"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App bundles the Fiber app with the services callers outside HTTP need.
type App struct {
	*fiber.App
	Auth *services.AuthService
}

// New builds the application. events may be nil, in which case domain events
// are dropped.
func New(cfg *config.Config, db *gorm.DB, events services.EventPublisher) *App {
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)

	authService := services.NewAuthService(userRepo, services.TokenConfig{
		Secret:          cfg.JWTSecret,
		AccessLifetime:  cfg.JWTAccessLifetime,
		RefreshLifetime: cfg.JWTRefreshLifetime,
	}, events)
	categoryService := services.NewCategoryService(categoryRepo, events)
	productService := services.NewProductService(productRepo, categoryRepo, events)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo, events)

	app := fiber.New(fiber.Config{
		AppName:      "buy-me-a-gift",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(middleware.SecurityHeaders())

	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	handlers.NewHealthHandler(db).RegisterRoutes(api)
	handlers.NewAuthHandler(authService).RegisterRoutes(api, middleware.RateLimit(cfg.AuthRateLimit))
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(api, auth)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(api, auth)

	return &App{App: app, Auth: authService}
}

// errorHandler renders framework errors (unknown route, bad method, body
// too large, panics) in the same {"error": ...} shape as the handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Unhandled server error")
		message = "Internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
