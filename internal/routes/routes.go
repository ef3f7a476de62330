package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/safetravel/safetravel/internal/auth"
	"github.com/safetravel/safetravel/internal/config"
	"github.com/safetravel/safetravel/internal/journey"
	"github.com/safetravel/safetravel/internal/middleware"
	"github.com/safetravel/safetravel/internal/notification"
	"github.com/safetravel/safetravel/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. A nil DB falls back
// to in-memory repositories, which dev mode and the tests rely on.
func Setup(app *fiber.App, d Deps) error {
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}

	var journeyRepo journey.Repository
	if d.DB != nil {
		journeyRepo = journey.NewPostgresRepository(d.DB)
	} else {
		journeyRepo = journey.NewMemoryRepository()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	tokens := auth.NewTokens([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)
	authSvc := auth.NewService(userRepo, tokens, notifier)
	journeySvc := journey.NewService(journeyRepo, notifier)

	authHandler := auth.NewHandler(authSvc)
	journeyHandler := journey.NewHandler(journeySvc)

	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler)
	RegisterJourneyRoutes(api, journeyHandler, d)

	// Protected routes
	gate := middleware.BearerAuth(tokens, userRepo)
	protected := api.Group("", gate)
	RegisterUserRoutes(protected)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
