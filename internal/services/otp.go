package services

import (
	"errors"
	"log"
	"time"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/utils"
)

// ErrInvalidInput is returned when a required field is missing.
var ErrInvalidInput = errors.New("email is required")

// OTPPolicy controls optional hardening of the login flow. The zero value
// is the compatible permissive behavior: codes never expire and wrong
// guesses neither count nor invalidate the pending code.
type OTPPolicy struct {
	Expiry      time.Duration
	MaxAttempts int
}

// OTPService issues and verifies login codes. One pending code per email;
// issuing again replaces it.
type OTPService struct {
	store  storage.Store
	policy OTPPolicy
}

func NewOTPService(store storage.Store, policy OTPPolicy) *OTPService {
	return &OTPService{store: store, policy: policy}
}

// Issue generates a fresh 6-digit code for the email, replacing any
// pending one. The code is logged for operator visibility; delivery to
// the user is the mailer's job.
func (s *OTPService) Issue(email string) (string, error) {
	if email == "" {
		return "", ErrInvalidInput
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return "", err
	}

	challenge := &models.OTPChallenge{
		Email: email,
		Code:  code,
	}
	if s.policy.Expiry > 0 {
		expiresAt := time.Now().Add(s.policy.Expiry)
		challenge.ExpiresAt = &expiresAt
	}

	if err := s.store.SaveChallenge(challenge); err != nil {
		return "", err
	}

	log.Printf("OTP for %s: %s", email, code)
	return code, nil
}

// Verify checks the code against the pending challenge. On success the
// challenge is deleted, making codes single-use. A wrong code returns the
// generic "Invalid OTP" message whether or not a challenge exists.
func (s *OTPService) Verify(email, code string) (bool, string) {
	challenge, err := s.store.GetChallenge(email)
	if err != nil {
		return false, "Invalid OTP"
	}

	if challenge.ExpiresAt != nil && time.Now().After(*challenge.ExpiresAt) {
		_ = s.store.DeleteChallenge(email)
		return false, "OTP expired"
	}

	if s.policy.MaxAttempts > 0 && challenge.Attempts >= s.policy.MaxAttempts {
		_ = s.store.DeleteChallenge(email)
		return false, "Too many attempts. Request a new OTP"
	}

	if challenge.Code != code {
		if s.policy.MaxAttempts > 0 {
			challenge.Attempts++
			_ = s.store.UpdateChallenge(challenge)
		}
		return false, "Invalid OTP"
	}

	if err := s.store.DeleteChallenge(email); err != nil {
		return false, "Invalid OTP"
	}
	return true, "OTP verified successfully"
}
