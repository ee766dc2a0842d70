package service

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

type PaymentService interface {
	ProcessQrisPayment(ctx context.Context, req *models.ProcessQrisPaymentRequest) (*models.Order, error)
}

type paymentService struct {
	orderRepo repository.OrderRepository
}

func NewPaymentService(orderRepo repository.OrderRepository) PaymentService {
	return &paymentService{orderRepo: orderRepo}
}

func (s *paymentService) ProcessQrisPayment(ctx context.Context, req *models.ProcessQrisPaymentRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndPassenger(ctx, req.OrderID, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}

	if !order.IsPayable() {
		return nil, apperrors.InvalidState("order cannot be paid in its current status")
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, apperrors.AlreadyPaid()
	}

	expected := order.ExpectedFare()
	if math.Abs(req.Amount-expected) > models.PaymentAmountTolerance {
		return nil, apperrors.AmountMismatch(expected)
	}

	// The gateway confirm is stubbed; the reference only needs to be
	// practically collision-free.
	paymentRef := fmt.Sprintf("QRIS-%d-%s", time.Now().UnixNano(), order.ID)

	if err := s.orderRepo.MarkPaid(ctx, order.ID, paymentRef); err != nil {
		return nil, err
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.QrisPaymentID = &paymentRef
	return order, nil
}
