package service

import (
	"context"
	"time"

	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req *models.CreateSubscriptionRequest) (*models.DriverSubscription, error)
}

type subscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	driverRepo repository.DriverProfileRepository
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	driverRepo repository.DriverProfileRepository,
) SubscriptionService {
	return &subscriptionService{
		subRepo:    subRepo,
		userRepo:   userRepo,
		driverRepo: driverRepo,
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *models.CreateSubscriptionRequest) (*models.DriverSubscription, error) {
	user, err := s.userRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}
	if user.Role != models.RoleDriver {
		return nil, apperrors.WrongRole(models.RoleDriver)
	}

	profile, err := s.driverRepo.GetByUserID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("driver profile")
	}

	now := time.Now()
	sub := &models.DriverSubscription{
		DriverID:         req.DriverID,
		SubscriptionType: req.SubscriptionType,
		Amount:           req.Amount,
		StartsAt:         now,
		ExpiresAt:        now.Add(models.SubscriptionDuration),
		PaymentStatus:    models.SubscriptionPaymentPending,
	}

	// The repo writes the row and the profile's denormalized expiry in
	// one transaction; access starts immediately, not on payment.
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}
