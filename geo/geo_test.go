package geo

import (
	"math"
	"testing"

	"karigar/apperrors"
)

func TestDistanceKmKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		latA, lngA, latB, lngB float64
		want                   float64
	}{
		{"connaught place to rohini", 28.6139, 77.2090, 28.70, 77.10, 14.31},
		{"connaught place short hop", 28.6139, 77.2090, 28.62, 77.21, 0.685},
		{"delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1148.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DistanceKm(tt.latA, tt.lngA, tt.latB, tt.lngB)
			if err != nil {
				t.Fatalf("DistanceKm returned error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.want*0.01 {
				t.Errorf("DistanceKm = %.3f, want about %.3f", got, tt.want)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{28.6139, 77.2090, 28.70, 77.10},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, p := range pairs {
		ab, err := DistanceKm(p[0], p[1], p[2], p[3])
		if err != nil {
			t.Fatalf("DistanceKm(a,b) error: %v", err)
		}
		ba, err := DistanceKm(p[2], p[3], p[0], p[1])
		if err != nil {
			t.Fatalf("DistanceKm(b,a) error: %v", err)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v for %v", ab, ba, p)
		}
	}
}

func TestDistanceKmSamePoint(t *testing.T) {
	d, err := DistanceKm(28.6139, 77.2090, 28.6139, 77.2090)
	if err != nil {
		t.Fatalf("DistanceKm error: %v", err)
	}
	if d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKmInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name                   string
		latA, lngA, latB, lngB float64
	}{
		{"lat out of range", 91, 0.5, 28.6, 77.2},
		{"lng out of range", 28.6, 181, 28.6, 77.2},
		{"zero origin", 0, 0, 28.6, 77.2},
		{"second point bad", 28.6, 77.2, -95, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DistanceKm(tt.latA, tt.lngA, tt.latB, tt.lngB); err != apperrors.ErrInvalidCoordinates {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestValidCoordinates(t *testing.T) {
	if ValidCoordinates(0, 0) {
		t.Error("zero origin should be invalid")
	}
	if !ValidCoordinates(-90, 180) {
		t.Error("range edges should be valid")
	}
	if ValidCoordinates(28.6, -180.1) {
		t.Error("lng below -180 should be invalid")
	}
}

func TestApproximateLocality(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"12 MG Road, Saket, New Delhi", "Saket, New Delhi"},
		{"Flat 4B, Indiranagar, Bengaluru, Karnataka", "Indiranagar, Bengaluru, Karnataka"},
		{"Koramangala", "Koramangala"},
		{"  7 Oak Lane ,  Andheri West ", "Andheri West"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ApproximateLocality(tt.address); got != tt.want {
			t.Errorf("ApproximateLocality(%q) = %q, want %q", tt.address, got, tt.want)
		}
	}
}
