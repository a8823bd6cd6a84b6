package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjay2518/FR/internal/config"
	"github.com/sanjay2518/FR/internal/handlers"
	"github.com/sanjay2518/FR/internal/metrics"
	"github.com/sanjay2518/FR/internal/middleware"
	"github.com/sanjay2518/FR/internal/repositories"
	"github.com/sanjay2518/FR/internal/services"
	"github.com/sanjay2518/FR/pkg/rabbitmq"
	"github.com/sanjay2518/FR/pkg/supabase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const healthTimeout = 5 * time.Second

// Deps are the collaborators NewApp wires into the routes.
type Deps struct {
	Store    *repositories.Store
	Identity services.IdentityProvider
	Tokens   *services.TokenService
	// Events may be nil.
	Events services.EventPublisher
}

// NewApp assembles services and handlers and mounts them under /api.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "FR API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(metrics.Middleware())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "FR learning API"})
	})
	app.Get("/health", healthHandler(deps.Store.Health))
	app.Get("/metrics", metrics.Handler())

	authService := services.NewAuthService(deps.Identity, deps.Store.Users, deps.Events)
	promptService := services.NewPromptService(deps.Store.Prompts, deps.Events)
	submissionService := services.NewSubmissionService(deps.Store.Submissions, deps.Events)
	adminService := services.NewAdminService(deps.Store.Users)

	api := app.Group("/api")
	handlers.NewAuthHandler(authService, deps.Tokens).RegisterRoutes(api)
	handlers.NewPromptHandler(promptService).RegisterRoutes(api)
	handlers.NewSubmissionHandler(submissionService).RegisterRoutes(api)
	handlers.NewAdminHandler(adminService).RegisterRoutes(api)

	return app
}

func healthHandler(checker repositories.HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "not configured",
			})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := checker.Ping(ctx); err != nil {
			log.WithError(err).Warn("Health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": "connected",
		})
	}
}

// buildBackend creates the store and identity provider for the configured driver.
// Missing hosted-service credentials degrade to the unconfigured store.
func buildBackend(cfg *config.Config, tokens *services.TokenService) (*repositories.Store, services.IdentityProvider, error) {
	if cfg.StoreDriver == config.DriverSupabase {
		var client *supabase.Client
		if cfg.SupabaseConfigured() {
			c, err := supabase.New(supabase.Config{
				URL:     cfg.SupabaseURL,
				APIKey:  cfg.SupabaseKey,
				Timeout: cfg.SupabaseTimeout,
			})
			if err != nil {
				log.WithError(err).Error("Supabase client unavailable, running unconfigured")
			} else {
				client = c
			}
		} else {
			log.Warn("SUPABASE_URL or SUPABASE_KEY is not set, running unconfigured")
		}
		return repositories.NewSupabaseStore(client), services.NewSupabaseIdentityProvider(client), nil
	}

	if cfg.JWTSecret == "" {
		return nil, nil, fmt.Errorf("JWT_SECRET is required for the %s driver", cfg.StoreDriver)
	}

	var store *repositories.Store
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = repositories.NewMockStore()
	case config.DriverPostgres, config.DriverSQLite:
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if store, err = repositories.NewGORMStore(db); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return store, services.NewLocalIdentityProvider(store.Credentials, tokens), nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dsn := cfg.DatabaseDSN
		if dsn == "" {
			dsn = "fr.db"
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.StoreDriver, err)
	}
	return db, nil
}

// connectEvents returns a nil publisher when the broker is not configured or
// unreachable. The returned close func is never nil.
func connectEvents(cfg *config.Config) (services.EventPublisher, func() error) {
	noop := func() error { return nil }
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL is not set, domain events disabled")
		return nil, noop
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue})
	if err != nil {
		log.WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		return nil, noop
	}
	return client, client.Close
}
