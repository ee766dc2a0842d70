package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/naufal/go-antar/internal/models"
)

type DriverProfileRepository interface {
	Create(ctx context.Context, profile *models.DriverProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.DriverProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]*models.DriverProfile, error)
	UpdateVehicle(ctx context.Context, profile *models.DriverProfile) error
	UpdateLocation(ctx context.Context, userID string, lat, lng float64, isAvailable bool) error
	GetMatchable(ctx context.Context) ([]*models.DriverProfile, error)
}

type driverProfileRepository struct {
	db *sqlx.DB
}

func NewDriverProfileRepository(db *sqlx.DB) DriverProfileRepository {
	return &driverProfileRepository{db: db}
}

func (r *driverProfileRepository) Create(ctx context.Context, profile *models.DriverProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	query := `
		INSERT INTO driver_profiles (id, user_id, license_number, vehicle_type, vehicle_plate,
			is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.UserID, profile.LicenseNumber, profile.VehicleType,
		profile.VehiclePlate, profile.IsAvailable, profile.CreatedAt, profile.UpdatedAt)
	return err
}

func (r *driverProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	query := `SELECT * FROM driver_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &profile, err
}

func (r *driverProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]*models.DriverProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM driver_profiles WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var profiles []*models.DriverProfile
	err = r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, err
}

func (r *driverProfileRepository) UpdateVehicle(ctx context.Context, profile *models.DriverProfile) error {
	profile.UpdatedAt = time.Now()
	query := `
		UPDATE driver_profiles
		SET license_number = $1, vehicle_type = $2, vehicle_plate = $3, updated_at = $4
		WHERE user_id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.LicenseNumber, profile.VehicleType, profile.VehiclePlate,
		profile.UpdatedAt, profile.UserID)
	return err
}

func (r *driverProfileRepository) UpdateLocation(ctx context.Context, userID string, lat, lng float64, isAvailable bool) error {
	query := `
		UPDATE driver_profiles
		SET current_lat = $1, current_lng = $2, is_available = $3, updated_at = $4
		WHERE user_id = $5
	`
	_, err := r.db.ExecContext(ctx, query, lat, lng, isAvailable, time.Now(), userID)
	return err
}

// GetMatchable returns profiles eligible to appear in nearby-driver search:
// available, role driver, known location, active subscription.
func (r *driverProfileRepository) GetMatchable(ctx context.Context) ([]*models.DriverProfile, error) {
	var profiles []*models.DriverProfile
	query := `
		SELECT p.* FROM driver_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_available = true
		AND u.role = $1
		AND p.current_lat IS NOT NULL AND p.current_lng IS NOT NULL
		AND p.subscription_expires_at IS NOT NULL AND p.subscription_expires_at > NOW()
	`
	err := r.db.SelectContext(ctx, &profiles, query, models.RoleDriver)
	return profiles, err
}
