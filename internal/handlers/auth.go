package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/services"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
)

// AuthHandler handles the OTP login flow
type AuthHandler struct {
	otp    *services.OTPService
	tokens services.TokenIssuer
	mailer services.Mailer
	store  storage.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(otp *services.OTPService, tokens services.TokenIssuer, mailer services.Mailer, store storage.Store) *AuthHandler {
	return &AuthHandler{otp: otp, tokens: tokens, mailer: mailer, store: store}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendOTP issues a login code and hands it to the mailer.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	code, err := h.otp.Issue(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Email is required",
			})
		}
		log.Printf("Error in SendOTP: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	if err := h.mailer.SendOTP(req.Email, code); err != nil {
		log.Printf("Error sending OTP email: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send OTP. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent successfully",
	})
}

// VerifyOTP checks the code, bootstraps the user record and returns a
// bearer token bound to the email.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Email == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and OTP are required",
		})
	}

	ok, message := h.otp.Verify(req.Email, req.OTP)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}

	// First login creates the user
	if _, err := h.store.GetUserByEmail(req.Email); err != nil {
		if _, err := h.store.CreateUser(req.Email); err != nil {
			log.Printf("Error creating user %s: %v", req.Email, err)
		}
	}
	if err := h.store.UpdateUserLastLogin(req.Email); err != nil {
		log.Printf("Error updating last login for %s: %v", req.Email, err)
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		log.Printf("Error issuing token for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    fiber.Map{"email": req.Email},
	})
}
