package service

import (
	"context"
	"time"

	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

type BidService interface {
	CreateBid(ctx context.Context, orderID string, req *models.CreateDriverBidRequest) (*models.DriverBid, error)
	GetOrderBids(ctx context.Context, orderID string) ([]*models.DriverBid, error)
}

type bidService struct {
	orderRepo  repository.OrderRepository
	bidRepo    repository.BidRepository
	userRepo   repository.UserRepository
	driverRepo repository.DriverProfileRepository
}

func NewBidService(
	orderRepo repository.OrderRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	driverRepo repository.DriverProfileRepository,
) BidService {
	return &bidService{
		orderRepo:  orderRepo,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		driverRepo: driverRepo,
	}
}

func (s *bidService) CreateBid(ctx context.Context, orderID string, req *models.CreateDriverBidRequest) (*models.DriverBid, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.InvalidState("order is no longer accepting bids")
	}

	user, err := s.userRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleDriver {
		return nil, apperrors.NotFound("driver")
	}

	profile, err := s.driverRepo.GetByUserID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("driver")
	}

	if !profile.IsAvailable {
		return nil, apperrors.Ineligible("driver is not available")
	}
	if !profile.HasActiveSubscription(time.Now()) {
		return nil, apperrors.Ineligible("driver subscription is missing or expired")
	}

	bid := &models.DriverBid{
		OrderID:                 orderID,
		DriverID:                req.DriverID,
		BidAmount:               req.BidAmount,
		EstimatedArrivalMinutes: req.EstimatedArrivalMinutes,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, err
	}

	return bid, nil
}

func (s *bidService) GetOrderBids(ctx context.Context, orderID string) ([]*models.DriverBid, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order")
	}

	// Bids are only listable while the order can still be bid on.
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.InvalidState("order is no longer accepting bids")
	}

	return s.bidRepo.GetByOrderID(ctx, orderID)
}
