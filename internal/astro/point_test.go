package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewPointValidation(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		wantErr  error
	}{
		{"valid", 60.1699, 24.9384, nil},
		{"lat upper bound", 90, 0, nil},
		{"lat lower bound", -90, 0, nil},
		{"lon bounds", 0, -180, nil},
		{"lat too high", 91, 0, ErrLatitudeRange},
		{"lat too low", -90.0001, 0, ErrLatitudeRange},
		{"lat NaN", math.NaN(), 0, ErrLatitudeRange},
		{"lon too high", 0, 180.5, ErrLongitudeRange},
		{"lon too low", 0, -181, ErrLongitudeRange},
		{"lon NaN", 0, math.NaN(), ErrLongitudeRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPoint(tc.lat, tc.lon)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.Latitude != tc.lat || p.Longitude != tc.lon {
					t.Fatalf("point %+v does not carry inputs (%v, %v)", p, tc.lat, tc.lon)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	d := Date{Year: 2025, Month: time.January, Day: 1}
	if got := d.String(); got != "2025-01-01" {
		t.Fatalf("Date.String() = %q, want 2025-01-01", got)
	}
}
