package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// Coordinate bounds for geographic locations.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0
)

// Location is an immutable geographic coordinate pair. Construction validates
// both components against their domains, so a held Location is always valid.
//
// The zero value (0, 0) is a legal coordinate ("null island"), which is why
// Location carries no constructor guard: range validation alone defines
// validity.
type Location struct {
	latitude  float64
	longitude float64
}

// NewLocation creates a Location after validating that latitude is within
// [-90, 90] and longitude within [-180, 180]. Violations return a
// ValueIsOutOfRangeError identifying the offending component.
func NewLocation(latitude, longitude float64) (Location, error) {
	// Negated range form so NaN also fails the check.
	if !(latitude >= MinLatitude && latitude <= MaxLatitude) {
		return Location{}, errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	if !(longitude >= MinLongitude && longitude <= MaxLongitude) {
		return Location{}, errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	return Location{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude component in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude component in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// IsEqual compares two locations component-wise.
func (l Location) IsEqual(other Location) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

// DistanceKmTo returns the great-circle distance to other in kilometers,
// using the haversine formula.
func (l Location) DistanceKmTo(other Location) float64 {
	const degToRad = math.Pi / 180
	dLat := (other.latitude - l.latitude) * degToRad
	dLon := (other.longitude - l.longitude) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(l.latitude*degToRad)*math.Cos(other.latitude*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// String formats the location as "lat,lon" for logs and events.
func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.latitude, l.longitude)
}
