package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// MemoryStore holds all data in memory. This is the default backend and
// matches the no-persistence behavior of the original demo server.
type MemoryStore struct {
	challenges map[string]*models.OTPChallenge
	users      map[string]*models.User
	trips      map[string]*models.Trip

	// Mutexes for thread safety
	challengeMu sync.RWMutex
	userMu      sync.RWMutex
	tripMu      sync.RWMutex

	userCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges: make(map[string]*models.OTPChallenge),
		users:      make(map[string]*models.User),
		trips:      make(map[string]*models.Trip),
	}
}

// Challenge operations

func (m *MemoryStore) SaveChallenge(challenge *models.OTPChallenge) error {
	m.challengeMu.Lock()
	defer m.challengeMu.Unlock()

	challenge.CreatedAt = time.Now()
	challenge.UpdatedAt = time.Now()
	m.challenges[challenge.Email] = challenge
	return nil
}

func (m *MemoryStore) GetChallenge(email string) (*models.OTPChallenge, error) {
	m.challengeMu.RLock()
	defer m.challengeMu.RUnlock()

	challenge, exists := m.challenges[email]
	if !exists {
		return nil, fmt.Errorf("challenge not found")
	}
	return challenge, nil
}

func (m *MemoryStore) UpdateChallenge(challenge *models.OTPChallenge) error {
	m.challengeMu.Lock()
	defer m.challengeMu.Unlock()

	if _, exists := m.challenges[challenge.Email]; !exists {
		return fmt.Errorf("challenge not found")
	}
	challenge.UpdatedAt = time.Now()
	m.challenges[challenge.Email] = challenge
	return nil
}

func (m *MemoryStore) DeleteChallenge(email string) error {
	m.challengeMu.Lock()
	defer m.challengeMu.Unlock()

	delete(m.challenges, email)
	return nil
}

// User operations

func (m *MemoryStore) CreateUser(email string) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[email]; exists {
		return nil, fmt.Errorf("user already exists")
	}

	m.userCounter++
	user := &models.User{
		Email: email,
	}
	user.ID = m.userCounter
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	m.users[email] = user
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[email]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (m *MemoryStore) UpdateUserLastLogin(email string) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return fmt.Errorf("user not found")
	}
	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	return nil
}

// Trip operations

func (m *MemoryStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()
	m.trips[trip.ID] = trip
	return trip, nil
}

func (m *MemoryStore) GetTrip(id string) (*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	trip, exists := m.trips[id]
	if !exists {
		return nil, fmt.Errorf("trip not found")
	}
	return trip, nil
}

func (m *MemoryStore) GetTripsByUser(email string) ([]*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	trips := []*models.Trip{}
	for _, trip := range m.trips {
		if trip.UserEmail == email {
			trips = append(trips, trip)
		}
	}

	// Newest first, matching the database store ordering
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func (m *MemoryStore) DeleteTrip(id, userEmail string) error {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	trip, exists := m.trips[id]
	if !exists || trip.UserEmail != userEmail {
		return fmt.Errorf("trip not found")
	}
	delete(m.trips, id)
	return nil
}
