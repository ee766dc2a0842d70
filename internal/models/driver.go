package models

import (
	"time"
)

type DriverProfile struct {
	ID                    string     `db:"id" json:"id"`
	UserID                string     `db:"user_id" json:"user_id"`
	LicenseNumber         string     `db:"license_number" json:"license_number"`
	VehicleType           string     `db:"vehicle_type" json:"vehicle_type"`
	VehiclePlate          string     `db:"vehicle_plate" json:"vehicle_plate"`
	IsAvailable           bool       `db:"is_available" json:"is_available"`
	CurrentLat            *float64   `db:"current_lat" json:"current_lat,omitempty"`
	CurrentLng            *float64   `db:"current_lng" json:"current_lng,omitempty"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at" json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateDriverProfileRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	LicenseNumber string `json:"license_number" validate:"required"`
	VehicleType   string `json:"vehicle_type" validate:"required"`
	VehiclePlate  string `json:"vehicle_plate" validate:"required"`
}

type UpdateDriverLocationRequest struct {
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	IsAvailable bool    `json:"is_available"`
}

type NearbyDriversRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	RadiusKm  float64 `json:"radius_km" validate:"gt=0"`
}

// DriverWithDistance pairs a profile with its distance from a query point.
type DriverWithDistance struct {
	*DriverProfile
	DistanceKm float64 `json:"distance_km"`
}

// HasActiveSubscription reports whether the driver's denormalized
// subscription window is still open at the given instant.
func (p *DriverProfile) HasActiveSubscription(now time.Time) bool {
	return p.SubscriptionExpiresAt != nil && p.SubscriptionExpiresAt.After(now)
}

// HasLocation reports whether both coordinates are known.
func (p *DriverProfile) HasLocation() bool {
	return p.CurrentLat != nil && p.CurrentLng != nil
}
