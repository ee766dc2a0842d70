package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusAccepted   = "accepted"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Valid order state transitions. Completed and cancelled are terminal.
var ValidOrderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:   {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

type Order struct {
	ID                 string    `db:"id" json:"id"`
	PassengerID        string    `db:"passenger_id" json:"passenger_id"`
	DriverID           *string   `db:"driver_id" json:"driver_id,omitempty"`
	PickupLat          float64   `db:"pickup_lat" json:"pickup_lat"`
	PickupLng          float64   `db:"pickup_lng" json:"pickup_lng"`
	PickupAddress      string    `db:"pickup_address" json:"pickup_address"`
	DestinationLat     float64   `db:"destination_lat" json:"destination_lat"`
	DestinationLng     float64   `db:"destination_lng" json:"destination_lng"`
	DestinationAddress string    `db:"destination_address" json:"destination_address"`
	EstimatedFare      float64   `db:"estimated_fare" json:"estimated_fare"`
	FinalFare          *float64  `db:"final_fare" json:"final_fare,omitempty"`
	Status             string    `db:"status" json:"status"`
	PaymentStatus      string    `db:"payment_status" json:"payment_status"`
	QrisPaymentID      *string   `db:"qris_payment_id" json:"qris_payment_id,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type CreateOrderRequest struct {
	PassengerID        string  `json:"passenger_id" validate:"required,uuid"`
	PickupLat          float64 `json:"pickup_lat" validate:"latitude"`
	PickupLng          float64 `json:"pickup_lng" validate:"longitude"`
	PickupAddress      string  `json:"pickup_address" validate:"required"`
	DestinationLat     float64 `json:"destination_lat" validate:"latitude"`
	DestinationLng     float64 `json:"destination_lng" validate:"longitude"`
	DestinationAddress string  `json:"destination_address" validate:"required"`
	EstimatedFare      float64 `json:"estimated_fare" validate:"gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status    string   `json:"status" validate:"required,oneof=pending accepted in_progress completed cancelled"`
	FinalFare *float64 `json:"final_fare,omitempty" validate:"omitempty,gt=0"`
}

type AcceptBidRequest struct {
	BidID       string `json:"bid_id" validate:"required,uuid"`
	PassengerID string `json:"passenger_id" validate:"required,uuid"`
}

// OrderWithDistance pairs an order with the distance from a driver's
// location to its pickup point.
type OrderWithDistance struct {
	*Order
	DistanceKm float64 `json:"distance_km"`
}

// CanTransitionTo checks if an order can transition to a new status.
func (o *Order) CanTransitionTo(newStatus string) bool {
	validNextStates, exists := ValidOrderTransitions[o.Status]
	if !exists {
		return false
	}

	for _, state := range validNextStates {
		if state == newStatus {
			return true
		}
	}
	return false
}

// IsPayable reports whether the order is in a status that accepts payment.
func (o *Order) IsPayable() bool {
	switch o.Status {
	case OrderStatusAccepted, OrderStatusInProgress, OrderStatusCompleted:
		return true
	}
	return false
}

// ExpectedFare is the amount a payment must match: the final fare once one
// is set, the estimate otherwise.
func (o *Order) ExpectedFare() float64 {
	if o.FinalFare != nil {
		return *o.FinalFare
	}
	return o.EstimatedFare
}
