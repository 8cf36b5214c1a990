package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPChallenge is the single pending login code for an email address.
// At most one challenge exists per email; issuing a new code overwrites
// the previous one. ExpiresAt is nil when no expiry policy is active.
type OTPChallenge struct {
	gorm.Model
	Email     string `gorm:"not null;uniqueIndex"`
	Code      string `gorm:"not null"`
	ExpiresAt *time.Time
	Attempts  int `gorm:"default:0"`
}
