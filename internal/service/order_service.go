package service

import (
	"context"

	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID, role string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	AcceptBid(ctx context.Context, orderID string, req *models.AcceptBidRequest) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	bidRepo   repository.BidRepository
	userRepo  repository.UserRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		bidRepo:   bidRepo,
		userRepo:  userRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	passenger, err := s.userRepo.GetByID(ctx, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, apperrors.NotFound("passenger")
	}

	order := &models.Order{
		PassengerID:        req.PassengerID,
		PickupLat:          req.PickupLat,
		PickupLng:          req.PickupLng,
		PickupAddress:      req.PickupAddress,
		DestinationLat:     req.DestinationLat,
		DestinationLng:     req.DestinationLng,
		DestinationAddress: req.DestinationAddress,
		EstimatedFare:      req.EstimatedFare,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}
	return order, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID, role string) ([]*models.Order, error) {
	switch role {
	case models.RolePassenger:
		return s.orderRepo.GetByPassengerID(ctx, userID)
	case models.RoleDriver:
		return s.orderRepo.GetByDriverID(ctx, userID)
	default:
		return nil, apperrors.ValidationError("role must be passenger or driver")
	}
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}

	if !order.CanTransitionTo(req.Status) {
		return nil, apperrors.InvalidTransition(order.Status, req.Status)
	}

	paymentStatus := order.PaymentStatus
	var finalFare *float64

	switch req.Status {
	case models.OrderStatusCompleted:
		// Completing an order settles it immediately in this demo; a
		// real flow would wait for an explicit payment confirmation.
		paymentStatus = models.PaymentStatusPaid
		if req.FinalFare != nil {
			finalFare = req.FinalFare
		}
	case models.OrderStatusCancelled:
		if order.PaymentStatus == models.PaymentStatusPaid {
			paymentStatus = models.PaymentStatusRefunded
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, req.Status, paymentStatus, finalFare); err != nil {
		return nil, err
	}

	order.Status = req.Status
	order.PaymentStatus = paymentStatus
	if finalFare != nil {
		order.FinalFare = finalFare
	}
	return order, nil
}

func (s *orderService) AcceptBid(ctx context.Context, orderID string, req *models.AcceptBidRequest) (*models.Order, error) {
	// Owner-scoped lookup: a missing order and someone else's order are
	// the same NotFound.
	order, err := s.orderRepo.GetByIDAndPassenger(ctx, orderID, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}

	bid, err := s.bidRepo.GetByIDAndOrder(ctx, req.BidID, orderID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, apperrors.NotFound("bid")
	}

	if order.Status != models.OrderStatusPending {
		return nil, apperrors.InvalidState("order is no longer pending")
	}

	// Conditional update so concurrent accepts can't both transition the
	// order; losing the guard means another call got there first.
	won, err := s.orderRepo.AcceptBid(ctx, orderID, bid.DriverID, bid.BidAmount)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperrors.InvalidState("order is no longer pending")
	}

	order.Status = models.OrderStatusAccepted
	order.DriverID = &bid.DriverID
	order.FinalFare = &bid.BidAmount
	return order, nil
}
