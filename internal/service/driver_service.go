package service

import (
	"context"
	"log"

	"github.com/naufal/go-antar/internal/cache"
	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

type DriverService interface {
	CreateProfile(ctx context.Context, req *models.CreateDriverProfileRequest) (*models.DriverProfile, error)
	GetProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)
	UpdateLocation(ctx context.Context, driverID string, req *models.UpdateDriverLocationRequest) (*models.DriverProfile, error)
}

type driverService struct {
	userRepo    repository.UserRepository
	driverRepo  repository.DriverProfileRepository
	driverCache cache.DriverLocationCache
}

func NewDriverService(
	userRepo repository.UserRepository,
	driverRepo repository.DriverProfileRepository,
	driverCache cache.DriverLocationCache,
) DriverService {
	return &driverService{
		userRepo:    userRepo,
		driverRepo:  driverRepo,
		driverCache: driverCache,
	}
}

func (s *driverService) CreateProfile(ctx context.Context, req *models.CreateDriverProfileRequest) (*models.DriverProfile, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}
	if user.Role != models.RoleDriver {
		return nil, apperrors.WrongRole(models.RoleDriver)
	}

	// Registration already creates an empty profile for drivers, so this
	// call usually fills in the vehicle fields rather than inserting.
	profile, err := s.driverRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &models.DriverProfile{
			UserID:        req.UserID,
			LicenseNumber: req.LicenseNumber,
			VehicleType:   req.VehicleType,
			VehiclePlate:  req.VehiclePlate,
			IsAvailable:   false,
		}
		if err := s.driverRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile.LicenseNumber = req.LicenseNumber
	profile.VehicleType = req.VehicleType
	profile.VehiclePlate = req.VehiclePlate
	if err := s.driverRepo.UpdateVehicle(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *driverService) GetProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	profile, err := s.driverRepo.GetByUserID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("driver profile")
	}
	return profile, nil
}

func (s *driverService) UpdateLocation(ctx context.Context, driverID string, req *models.UpdateDriverLocationRequest) (*models.DriverProfile, error) {
	profile, err := s.driverRepo.GetByUserID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("driver profile")
	}

	if err := s.driverRepo.UpdateLocation(ctx, driverID, req.Latitude, req.Longitude, req.IsAvailable); err != nil {
		return nil, err
	}

	// Mirror into the geo cache; the DB row is authoritative so cache
	// failures are logged and ignored.
	if s.driverCache != nil {
		if req.IsAvailable {
			if err := s.driverCache.UpdateLocation(ctx, driverID, req.Latitude, req.Longitude); err != nil {
				log.Printf("failed to update driver location in cache: %v", err)
			}
		} else {
			if err := s.driverCache.Remove(ctx, driverID); err != nil {
				log.Printf("failed to remove driver from cache: %v", err)
			}
		}
	}

	profile.CurrentLat = &req.Latitude
	profile.CurrentLng = &req.Longitude
	profile.IsAvailable = req.IsAvailable
	return profile, nil
}
