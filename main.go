package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/travelbuddy-app/travelbuddy-backend/database"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/config"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/routes"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/services"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	cfg := config.Load()

	// Initialize storage
	var store storage.Store

	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (codes and trips vanish on restart)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.OTPChallenge{},
			&models.User{},
			&models.Trip{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Initialize services
	otpService := services.NewOTPService(store, services.OTPPolicy{
		Expiry:      time.Duration(cfg.OTPExpiryMinutes) * time.Minute,
		MaxAttempts: cfg.OTPMaxAttempts,
	})
	tokens := services.NewTokenIssuer(cfg)
	mailer := services.NewMailer(cfg)
	planner := services.NewPlanner(cfg)
	tripService := services.NewTripService(store, planner, mailer)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "TravelBuddy Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Setup routes
	routes.SetupRoutes(app, store, otpService, tokens, mailer, tripService)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 TravelBuddy Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("🔑 Token scheme: %s", cfg.TokenScheme)
	log.Printf("🗺️  Planner: %s", cfg.Planner)
	log.Printf("📧 OTP delivery: %s", cfg.OTPDelivery)
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory"
	}
	return "PostgreSQL Database"
}
