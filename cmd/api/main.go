package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	config "github.com/sessionmarket/backend/configs"
	"github.com/sessionmarket/backend/database"
	"github.com/sessionmarket/backend/handlers"
	"github.com/sessionmarket/backend/jobs"
	"github.com/sessionmarket/backend/middleware"
	"github.com/sessionmarket/backend/payments"
	"github.com/sessionmarket/backend/repository"
	"github.com/sessionmarket/backend/routes"
	"github.com/sessionmarket/backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	database.Migrate(db)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("🔥 Failed to connect to redis: %v", err)
	}

	processor, err := payments.NewProcessor(cfg.PaymentProvider, payments.ProviderConfig{
		SecretKey: cfg.StripeSecretKey,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to initialize payment processor: %v", err)
	}

	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	catalogService := services.NewCatalogService(sessionRepo,
		services.NewRedisRateLimiter(rdb, "sessions", cfg.SessionRateLimit, cfg.RateLimitWindow))
	bookingService := services.NewBookingService(sessionRepo, bookingRepo,
		services.NewRedisRateLimiter(rdb, "bookings", cfg.BookingRateLimit, cfg.RateLimitWindow))
	paymentService := services.NewPaymentService(bookingRepo, processor,
		services.NewRedisRateLimiter(rdb, "payments", cfg.PaymentRateLimit, cfg.RateLimitWindow),
		cfg.StripeWebhookSecret)

	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret)
	sessionHandler := handlers.NewSessionHandler(catalogService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(catalogService, bookingService)

	c := cron.New()
	c.AddJob("*/15 * * * *", jobs.NewCompletionJob(db, bookingRepo))
	go c.Start()
	log.Println("✅ Cron job for booking completion scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Session Market",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	protect := middleware.Protected(cfg.JWTSecret)

	routes.AuthRoutes(app, authHandler)
	routes.SessionRoutes(app, sessionHandler, protect)
	routes.BookingRoutes(app, bookingHandler, protect)
	routes.PaymentRoutes(app, paymentHandler, protect)
	routes.DashboardRoutes(app, dashboardHandler, protect)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
