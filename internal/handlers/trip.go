package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/middleware"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/services"
)

// TripHandler handles trip generation and the saved-trip endpoints
type TripHandler struct {
	trips *services.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(trips *services.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type tripResponse struct {
	ID string `json:"id"`
	models.TripPlan
}

func authedEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(middleware.LocalsEmailKey).(string)
	return email
}

// Generate plans a trip for the authenticated user and saves it.
func (h *TripHandler) Generate(c *fiber.Ctx) error {
	email := authedEmail(c)

	var req models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Budget, members, and days must be numbers",
		})
	}

	trip, err := h.trips.Generate(email, &req)
	if err != nil {
		log.Printf("Error in Generate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save trip",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Trip plan generated successfully",
		"trip":    tripResponse{ID: trip.ID, TripPlan: trip.Plan},
	})
}

// MyTrips lists the authenticated user's saved trips, newest first.
func (h *TripHandler) MyTrips(c *fiber.Ctx) error {
	trips, err := h.trips.ListByUser(authedEmail(c))
	if err != nil {
		log.Printf("Error in MyTrips: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"trips":   trips,
	})
}

// GetTrip returns one saved trip if the authenticated user owns it.
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	trip, err := h.trips.Get(c.Params("id"), authedEmail(c))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Trip not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"trip":    trip,
	})
}

// DeleteTrip removes one of the authenticated user's trips.
func (h *TripHandler) DeleteTrip(c *fiber.Ctx) error {
	if err := h.trips.Delete(c.Params("id"), authedEmail(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete trip",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Trip deleted successfully",
	})
}
