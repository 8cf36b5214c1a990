package services

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
)

// ErrForbidden is returned when a user reads another user's trip.
var ErrForbidden = errors.New("unauthorized")

// TripService generates itineraries and keeps them per user.
type TripService struct {
	store   storage.Store
	planner Planner
	mailer  Mailer
}

func NewTripService(store storage.Store, planner Planner, mailer Mailer) *TripService {
	return &TripService{store: store, planner: planner, mailer: mailer}
}

// Generate runs the planner and saves the result for the user. A failed
// confirmation email is logged but does not fail the trip.
func (s *TripService) Generate(email string, req *models.TripRequest) (*models.Trip, error) {
	plan, err := s.planner.Generate(req)
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:            uuid.NewString(),
		UserEmail:     email,
		Destination:   req.Destination,
		Budget:        float64(req.Budget),
		Members:       int(req.Members),
		Days:          int(req.Days),
		FromLocation:  req.From,
		Accommodation: req.Accommodation,
		Interests:     strings.Join(req.Interests, ", "),
		Plan:          *plan,
	}

	saved, err := s.store.CreateTrip(trip)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendTripConfirmation(email, saved); err != nil {
		log.Printf("Error sending confirmation email: %v", err)
	}
	return saved, nil
}

// ListByUser returns the user's trips, newest first.
func (s *TripService) ListByUser(email string) ([]*models.Trip, error) {
	return s.store.GetTripsByUser(email)
}

// Get returns a trip if it belongs to the user.
func (s *TripService) Get(id, email string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(id)
	if err != nil {
		return nil, err
	}
	if trip.UserEmail != email {
		return nil, ErrForbidden
	}
	return trip, nil
}

// Delete removes the user's trip.
func (s *TripService) Delete(id, email string) error {
	return s.store.DeleteTrip(id, email)
}
