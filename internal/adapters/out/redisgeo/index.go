// Package redisgeo mirrors driver location fixes into Redis GEO commands for
// proximity queries. The index is a projection over committed fixes; readers
// tolerate staleness and the write path treats failures as non-fatal.
package redisgeo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Index implements DriverGeoIndex on a Redis GEO set.
type Index struct {
	client *redis.Client
	key    string
}

// NewIndex creates a geo index on the given Redis address under one key.
func NewIndex(addr, password, key string) *Index {
	return &Index{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		key:    key,
	}
}

// Upsert records the driver's latest position, replacing any previous entry.
func (i *Index) Upsert(ctx context.Context, driverID kernel.UUID, location kernel.Location, _ time.Time) error {
	return i.client.GeoAdd(ctx, i.key, &redis.GeoLocation{
		Name:      driverID.String(),
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
	}).Err()
}

// Nearby returns drivers within radiusKm of the center, closest first.
func (i *Index) Nearby(ctx context.Context, center kernel.Location, radiusKm float64, limit int) ([]ports.DriverPosition, error) {
	results, err := i.client.GeoSearchLocation(ctx, i.key, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Latitude:   center.Latitude(),
			Longitude:  center.Longitude(),
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, err
	}

	positions := make([]ports.DriverPosition, 0, len(results))
	for _, found := range results {
		driverID, idErr := kernel.UUIDFromString(found.Name)
		if idErr != nil {
			continue
		}
		location, locErr := kernel.NewLocation(found.Latitude, found.Longitude)
		if locErr != nil {
			continue
		}
		positions = append(positions, ports.DriverPosition{
			DriverID:   driverID,
			Location:   location,
			DistanceKm: found.Dist,
		})
	}
	return positions, nil
}

// Close releases the Redis connection.
func (i *Index) Close() error {
	return i.client.Close()
}
