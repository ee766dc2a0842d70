package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/naufal/go-antar/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByIDAndPassenger(ctx context.Context, id, passengerID string) (*models.Order, error)
	GetByPassengerID(ctx context.Context, passengerID string) ([]*models.Order, error)
	GetByDriverID(ctx context.Context, driverID string) ([]*models.Order, error)
	GetPendingUnassigned(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id, status, paymentStatus string, finalFare *float64) error
	AcceptBid(ctx context.Context, orderID, driverID string, finalFare float64) (bool, error)
	MarkPaid(ctx context.Context, id, paymentRef string) error
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusUnpaid

	query := `
		INSERT INTO orders (id, passenger_id, pickup_lat, pickup_lng, pickup_address,
			destination_lat, destination_lng, destination_address, estimated_fare,
			status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.PassengerID, order.PickupLat, order.PickupLng, order.PickupAddress,
		order.DestinationLat, order.DestinationLng, order.DestinationAddress, order.EstimatedFare,
		order.Status, order.PaymentStatus, order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE id = $1`
	err := r.db.GetContext(ctx, &order, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &order, err
}

// GetByIDAndPassenger scopes the lookup by owner so that "does not exist"
// and "exists but not yours" are indistinguishable to the caller.
func (r *orderRepository) GetByIDAndPassenger(ctx context.Context, id, passengerID string) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE id = $1 AND passenger_id = $2`
	err := r.db.GetContext(ctx, &order, query, id, passengerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*models.Order, error) {
	var orders []*models.Order
	query := `SELECT * FROM orders WHERE passenger_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &orders, query, passengerID)
	return orders, err
}

func (r *orderRepository) GetByDriverID(ctx context.Context, driverID string) ([]*models.Order, error) {
	var orders []*models.Order
	query := `SELECT * FROM orders WHERE driver_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &orders, query, driverID)
	return orders, err
}

func (r *orderRepository) GetPendingUnassigned(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	query := `
		SELECT * FROM orders
		WHERE status = $1 AND driver_id IS NULL
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &orders, query, models.OrderStatusPending)
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status, paymentStatus string, finalFare *float64) error {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, final_fare = COALESCE($3, final_fare), updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, status, paymentStatus, finalFare, time.Now(), id)
	return err
}

// AcceptBid assigns a driver and fare with a single conditional update so
// that concurrent accepts cannot both win: only the caller that still sees
// the order pending transitions it. Returns false when the guard lost.
func (r *orderRepository) AcceptBid(ctx context.Context, orderID, driverID string, finalFare float64) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, driver_id = $2, final_fare = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		models.OrderStatusAccepted, driverID, finalFare, time.Now(),
		orderID, models.OrderStatusPending)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id, paymentRef string) error {
	query := `
		UPDATE orders
		SET payment_status = $1, qris_payment_id = $2, updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PaymentStatusPaid, paymentRef, time.Now(), id)
	return err
}
