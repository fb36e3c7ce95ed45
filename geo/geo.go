package geo

import (
	"math"
	"strings"

	"karigar/apperrors"
)

const EarthRadiusKm = 6371.0

// ValidCoordinates reports whether a point can take part in matching.
// The zero origin is rejected: it is what unset locations decode to.
func ValidCoordinates(lat, lng float64) bool {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	if lat == 0 && lng == 0 {
		return false
	}
	return true
}

// DistanceKm computes the great-circle distance between two points using the
// haversine formula.
func DistanceKm(latA, lngA, latB, lngB float64) (float64, error) {
	if !ValidCoordinates(latA, lngA) || !ValidCoordinates(latB, lngB) {
		return 0, apperrors.ErrInvalidCoordinates
	}

	phiA := latA * math.Pi / 180
	phiB := latB * math.Pi / 180
	dPhi := (latB - latA) * math.Pi / 180
	dLambda := (lngB - lngA) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phiA)*math.Cos(phiB)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h)), nil
}

// ApproximateLocality derives the display locality from a full address by
// dropping the leading street segment. "12 MG Road, Saket, New Delhi"
// becomes "Saket, New Delhi". Computed once at job creation.
func ApproximateLocality(address string) string {
	parts := strings.Split(address, ",")
	var cleaned []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) < 2 {
		return strings.TrimSpace(address)
	}
	return strings.Join(cleaned[1:], ", ")
}
