package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrLatitudeRange is returned for latitudes outside [-90, 90].
	ErrLatitudeRange = errors.New("latitude must be between -90 and 90")
	// ErrLongitudeRange is returned for longitudes outside [-180, 180].
	ErrLongitudeRange = errors.New("longitude must be between -180 and 180")
)

// Point is a validated geographic location. Longitude is east-positive.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint validates coordinates at construction. Out-of-range values are an
// error, never a silent clamp.
func NewPoint(lat, lon float64) (Point, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("%w, got %v", ErrLatitudeRange, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("%w, got %v", ErrLongitudeRange, lon)
	}
	return Point{Latitude: lat, Longitude: lon}, nil
}

// Date is a proleptic Gregorian calendar date with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as ISO 8601 (e.g. 2025-01-01).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
