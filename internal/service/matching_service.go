package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/naufal/go-antar/internal/cache"
	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/geo"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

const (
	// DefaultNearbyRadiusKm is used when a nearby-driver search does not
	// specify a radius.
	DefaultNearbyRadiusKm = 10.0
	// availableOrderRadiusKm is the fixed radius for a driver's
	// available-order feed.
	availableOrderRadiusKm = 20.0
)

type MatchingService interface {
	NearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]*models.DriverWithDistance, error)
	AvailableOrders(ctx context.Context, driverID string) ([]*models.Order, error)
}

type matchingService struct {
	driverRepo  repository.DriverProfileRepository
	orderRepo   repository.OrderRepository
	driverCache cache.DriverLocationCache
}

func NewMatchingService(
	driverRepo repository.DriverProfileRepository,
	orderRepo repository.OrderRepository,
	driverCache cache.DriverLocationCache,
) MatchingService {
	return &matchingService{
		driverRepo:  driverRepo,
		orderRepo:   orderRepo,
		driverCache: driverCache,
	}
}

func (s *matchingService) NearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]*models.DriverWithDistance, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	profiles, err := s.candidateProfiles(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*models.DriverWithDistance, 0, len(profiles))
	for _, p := range profiles {
		// Eligibility is always re-checked against the profile row, no
		// matter where the candidate came from.
		if !p.IsAvailable || !p.HasLocation() || !p.HasActiveSubscription(now) {
			continue
		}

		dist := geo.HaversineKm(lat, lng, *p.CurrentLat, *p.CurrentLng)
		if dist > radiusKm {
			continue
		}

		result = append(result, &models.DriverWithDistance{
			DriverProfile: p,
			DistanceKm:    dist,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return result, nil
}

// candidateProfiles asks the geo cache for ids within the radius and loads
// their rows; on a cache miss or error it falls back to scanning every
// matchable profile in Postgres.
func (s *matchingService) candidateProfiles(ctx context.Context, lat, lng, radiusKm float64) ([]*models.DriverProfile, error) {
	if s.driverCache != nil {
		hits, err := s.driverCache.NearbyDriverIDs(ctx, lat, lng, radiusKm)
		if err != nil {
			log.Printf("driver geo cache lookup failed, falling back to db: %v", err)
		} else if len(hits) > 0 {
			ids := make([]string, 0, len(hits))
			for _, h := range hits {
				ids = append(ids, h.DriverID)
			}
			return s.driverRepo.GetByUserIDs(ctx, ids)
		}
	}

	return s.driverRepo.GetMatchable(ctx)
}

func (s *matchingService) AvailableOrders(ctx context.Context, driverID string) ([]*models.Order, error) {
	profile, err := s.driverRepo.GetByUserID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("driver profile")
	}

	// A lapsed subscription hides the feed rather than erroring.
	if !profile.HasActiveSubscription(time.Now()) {
		return []*models.Order{}, nil
	}

	orders, err := s.orderRepo.GetPendingUnassigned(ctx)
	if err != nil {
		return nil, err
	}

	// Location-blind fallback: without coordinates every pending order
	// is offered, unranked.
	if !profile.HasLocation() {
		return orders, nil
	}

	type orderDist struct {
		order *models.Order
		dist  float64
	}

	within := make([]orderDist, 0, len(orders))
	for _, o := range orders {
		dist := geo.HaversineKm(*profile.CurrentLat, *profile.CurrentLng, o.PickupLat, o.PickupLng)
		if dist > availableOrderRadiusKm {
			continue
		}
		within = append(within, orderDist{order: o, dist: dist})
	}

	sort.Slice(within, func(i, j int) bool {
		return within[i].dist < within[j].dist
	})

	result := make([]*models.Order, 0, len(within))
	for _, od := range within {
		result = append(result, od.order)
	}
	return result, nil
}
