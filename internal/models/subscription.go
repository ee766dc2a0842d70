package models

import (
	"time"
)

// Subscription types
const (
	SubscriptionTypeMonthly = "monthly"
)

// SubscriptionDuration is the fixed access window granted per purchase.
const SubscriptionDuration = 30 * 24 * time.Hour

// Subscription payment is recorded pending at purchase; no gateway call is
// made and access is granted immediately on creation.
const SubscriptionPaymentPending = "pending"

type DriverSubscription struct {
	ID               string    `db:"id" json:"id"`
	DriverID         string    `db:"driver_id" json:"driver_id"`
	SubscriptionType string    `db:"subscription_type" json:"subscription_type"`
	Amount           float64   `db:"amount" json:"amount"`
	StartsAt         time.Time `db:"starts_at" json:"starts_at"`
	ExpiresAt        time.Time `db:"expires_at" json:"expires_at"`
	PaymentStatus    string    `db:"payment_status" json:"payment_status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type CreateSubscriptionRequest struct {
	DriverID         string  `json:"driver_id" validate:"required,uuid"`
	SubscriptionType string  `json:"subscription_type" validate:"required,oneof=monthly"`
	Amount           float64 `json:"amount" validate:"gt=0"`
}
