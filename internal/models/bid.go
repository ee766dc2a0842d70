package models

import (
	"time"
)

// DriverBid is a driver's offer on a pending order. Bids are immutable once
// created; they become irrelevant when the order leaves pending.
type DriverBid struct {
	ID                      string    `db:"id" json:"id"`
	OrderID                 string    `db:"order_id" json:"order_id"`
	DriverID                string    `db:"driver_id" json:"driver_id"`
	BidAmount               float64   `db:"bid_amount" json:"bid_amount"`
	EstimatedArrivalMinutes int       `db:"estimated_arrival_minutes" json:"estimated_arrival_minutes"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
}

type CreateDriverBidRequest struct {
	DriverID                string  `json:"driver_id" validate:"required,uuid"`
	BidAmount               float64 `json:"bid_amount" validate:"gt=0"`
	EstimatedArrivalMinutes int     `json:"estimated_arrival_minutes" validate:"gt=0"`
}
