package geonames

import (
	"errors"
	"math"
	"testing"
)

func TestNearest(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Nearest(55.76, 37.62)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if rec.Name != "Moscow" {
		t.Errorf("Nearest near Moscow center = %q, want \"Moscow\"", rec.Name)
	}

	rec, err = svc.Nearest(59.93, 30.31)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if rec.Name != "Saint Petersburg" {
		t.Errorf("Nearest near SPB center = %q, want \"Saint Petersburg\"", rec.Name)
	}
}

func TestNearestNothingNearby(t *testing.T) {
	svc := newTestService(t)

	// Gulf of Guinea, nowhere near the fixture places.
	if _, err := svc.Nearest(0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Nearest(0, 0) err = %v, want ErrNotFound", err)
	}
}

func TestNearestValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"NaNLat", math.NaN(), 37.6},
		{"NaNLng", 55.7, math.NaN()},
		{"LatTooHigh", 91, 0},
		{"LatTooLow", -91, 0},
		{"LngTooHigh", 0, 181},
		{"LngTooLow", 0, -181},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Nearest(tt.lat, tt.lng); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Nearest(%v, %v) err = %v, want ErrInvalidArgument", tt.lat, tt.lng, err)
			}
		})
	}
}
