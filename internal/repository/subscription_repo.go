package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/naufal/go-antar/internal/models"
)

type SubscriptionRepository interface {
	// Create inserts the subscription row and overwrites the driver
	// profile's denormalized expiry in the same transaction.
	Create(ctx context.Context, sub *models.DriverSubscription) error
}

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.DriverSubscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.CreatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO driver_subscriptions (id, driver_id, subscription_type, amount,
			starts_at, expires_at, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, query,
		sub.ID, sub.DriverID, sub.SubscriptionType, sub.Amount,
		sub.StartsAt, sub.ExpiresAt, sub.PaymentStatus, sub.CreatedAt); err != nil {
		return err
	}

	// Keep the profile's denormalized copy in sync with the new window.
	if _, err := tx.ExecContext(ctx,
		`UPDATE driver_profiles SET subscription_expires_at = $1, updated_at = $2 WHERE user_id = $3`,
		sub.ExpiresAt, time.Now(), sub.DriverID); err != nil {
		return err
	}

	return tx.Commit()
}
