package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/models"
)

// DatabaseStore persists everything in PostgreSQL. Challenge upserts are
// atomic on the email key, which keeps single-use semantics when several
// instances share the database.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Challenge operations

func (d *DatabaseStore) SaveChallenge(challenge *models.OTPChallenge) error {
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "attempts", "updated_at"}),
	}).Create(challenge).Error
	if err != nil {
		return fmt.Errorf("failed to save challenge: %w", err)
	}
	return nil
}

func (d *DatabaseStore) GetChallenge(email string) (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	err := d.db.Where("email = ?", email).First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, err
	}
	return &challenge, nil
}

func (d *DatabaseStore) UpdateChallenge(challenge *models.OTPChallenge) error {
	return d.db.Save(challenge).Error
}

func (d *DatabaseStore) DeleteChallenge(email string) error {
	return d.db.Unscoped().Where("email = ?", email).Delete(&models.OTPChallenge{}).Error
}

// User operations

func (d *DatabaseStore) CreateUser(email string) (*models.User, error) {
	user := &models.User{Email: email}
	if err := d.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) UpdateUserLastLogin(email string) error {
	return d.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("last_login_at", time.Now()).Error
}

// Trip operations

func (d *DatabaseStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	if err := d.db.Create(trip).Error; err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

func (d *DatabaseStore) GetTrip(id string) (*models.Trip, error) {
	var trip models.Trip
	err := d.db.Where("id = ?", id).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("trip not found")
		}
		return nil, err
	}
	return &trip, nil
}

func (d *DatabaseStore) GetTripsByUser(email string) ([]*models.Trip, error) {
	var trips []*models.Trip
	err := d.db.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (d *DatabaseStore) DeleteTrip(id, userEmail string) error {
	result := d.db.Where("id = ? AND user_email = ?", id, userEmail).Delete(&models.Trip{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trip not found")
	}
	return nil
}
