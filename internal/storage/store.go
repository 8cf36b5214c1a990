package storage

import (
	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations. The in-memory
// implementation is the default; the database implementation exists so a
// multi-instance deployment can share challenge state.
type Store interface {
	// Challenge operations. SaveChallenge overwrites any pending
	// challenge for the same email.
	SaveChallenge(challenge *models.OTPChallenge) error
	GetChallenge(email string) (*models.OTPChallenge, error)
	UpdateChallenge(challenge *models.OTPChallenge) error
	DeleteChallenge(email string) error

	// User operations
	CreateUser(email string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUserLastLogin(email string) error

	// Trip operations
	CreateTrip(trip *models.Trip) (*models.Trip, error)
	GetTrip(id string) (*models.Trip, error)
	GetTripsByUser(email string) ([]*models.Trip, error)
	DeleteTrip(id, userEmail string) error
}
