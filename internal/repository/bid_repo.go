package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/naufal/go-antar/internal/models"
)

type BidRepository interface {
	Create(ctx context.Context, bid *models.DriverBid) error
	GetByIDAndOrder(ctx context.Context, bidID, orderID string) (*models.DriverBid, error)
	GetByOrderID(ctx context.Context, orderID string) ([]*models.DriverBid, error)
}

type bidRepository struct {
	db *sqlx.DB
}

func NewBidRepository(db *sqlx.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(ctx context.Context, bid *models.DriverBid) error {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	bid.CreatedAt = time.Now()

	query := `
		INSERT INTO driver_bids (id, order_id, driver_id, bid_amount, estimated_arrival_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.OrderID, bid.DriverID, bid.BidAmount, bid.EstimatedArrivalMinutes, bid.CreatedAt)
	return err
}

// GetByIDAndOrder scopes the bid lookup to its order.
func (r *bidRepository) GetByIDAndOrder(ctx context.Context, bidID, orderID string) (*models.DriverBid, error) {
	var bid models.DriverBid
	query := `SELECT * FROM driver_bids WHERE id = $1 AND order_id = $2`
	err := r.db.GetContext(ctx, &bid, query, bidID, orderID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &bid, err
}

// GetByOrderID returns bids cheapest-and-fastest-first.
func (r *bidRepository) GetByOrderID(ctx context.Context, orderID string) ([]*models.DriverBid, error) {
	var bids []*models.DriverBid
	query := `
		SELECT * FROM driver_bids
		WHERE order_id = $1
		ORDER BY bid_amount ASC, estimated_arrival_minutes ASC
	`
	err := r.db.SelectContext(ctx, &bids, query, orderID)
	return bids, err
}
