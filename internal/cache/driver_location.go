package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const driverGeoKey = "drivers:geo"

// DriverDistance is a cache hit from a radius query: a driver user id and
// its distance in km from the query point.
type DriverDistance struct {
	DriverID   string
	DistanceKm float64
}

// DriverLocationCache mirrors driver coordinates into a Redis geo set so
// nearby lookups don't scan the profiles table. Postgres stays the source of
// truth for eligibility; callers must re-check it against the profile rows.
type DriverLocationCache interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error
	Remove(ctx context.Context, driverID string) error
	NearbyDriverIDs(ctx context.Context, lat, lng, radiusKm float64) ([]DriverDistance, error)
}

type driverLocationCache struct {
	redis *redis.Client
}

func NewDriverLocationCache(redisClient *redis.Client) DriverLocationCache {
	return &driverLocationCache{redis: redisClient}
}

func (c *driverLocationCache) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	return c.redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      driverID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

func (c *driverLocationCache) Remove(ctx context.Context, driverID string) error {
	return c.redis.ZRem(ctx, driverGeoKey, driverID).Err()
}

func (c *driverLocationCache) NearbyDriverIDs(ctx context.Context, lat, lng, radiusKm float64) ([]DriverDistance, error) {
	locations, err := c.redis.GeoRadius(ctx, driverGeoKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Count:    100,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	result := make([]DriverDistance, 0, len(locations))
	for _, loc := range locations {
		result = append(result, DriverDistance{
			DriverID:   loc.Name,
			DistanceKm: loc.Dist,
		})
	}
	return result, nil
}
