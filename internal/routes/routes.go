package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/handlers"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/middleware"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/services"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, otpService *services.OTPService,
	tokens services.TokenIssuer, mailer services.Mailer, tripService *services.TripService) {

	authHandler := handlers.NewAuthHandler(otpService, tokens, mailer, store)
	tripHandler := handlers.NewTripHandler(tripService)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TravelBuddy Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":        "/health",
				"send_otp":      "/api/send-otp",
				"verify_otp":    "/api/verify-otp",
				"generate_trip": "/api/generate-trip",
				"my_trips":      "/api/my-trips",
			},
		})
	})

	// Health check at the root for deploy probes
	app.Get("/health", healthHandler.Check)

	// API routes
	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	// Auth routes
	api.Post("/send-otp", authHandler.SendOTP)
	api.Post("/verify-otp", authHandler.VerifyOTP)

	// Trip routes, behind the bearer token
	requireAuth := middleware.RequireAuth(tokens)
	api.Post("/generate-trip", requireAuth, tripHandler.Generate)
	api.Get("/my-trips", requireAuth, tripHandler.MyTrips)
	api.Get("/trips/:id", requireAuth, tripHandler.GetTrip)
	api.Delete("/trips/:id", requireAuth, tripHandler.DeleteTrip)
}
