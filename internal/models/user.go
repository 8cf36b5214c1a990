package models

import (
	"time"

	"gorm.io/gorm"
)

// User is created lazily on first successful login.
type User struct {
	gorm.Model
	Email       string `gorm:"not null;uniqueIndex" json:"email"`
	LastLoginAt *time.Time
}
