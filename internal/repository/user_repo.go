package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/naufal/go-antar/internal/models"
)

type UserRepository interface {
	// Create inserts a user and, when profile is non-nil, the driver's
	// empty profile in the same transaction.
	Create(ctx context.Context, user *models.User, profile *models.DriverProfile) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User, profile *models.DriverProfile) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone,
		user.Role, user.CreatedAt, user.UpdatedAt); err != nil {
		return err
	}

	if profile != nil {
		if profile.ID == "" {
			profile.ID = uuid.New().String()
		}
		profile.UserID = user.ID
		profile.CreatedAt = user.CreatedAt
		profile.UpdatedAt = user.CreatedAt

		query := `
			INSERT INTO driver_profiles (id, user_id, license_number, vehicle_type, vehicle_plate,
				is_available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.ExecContext(ctx, query,
			profile.ID, profile.UserID, profile.LicenseNumber, profile.VehicleType,
			profile.VehiclePlate, profile.IsAvailable, profile.CreatedAt, profile.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &user, err
}
