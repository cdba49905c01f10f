// Package geo defines the geolocation contract the game depends on:
// turning a place name into coordinates and measuring how far apart
// two points are.
package geo

import (
	"context"
	"errors"
	"math"
)

var ErrNotFound = errors.New("place not found")

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolver turns a free-text place name into coordinates.
// Implementations return ErrNotFound when the name cannot be resolved.
type Resolver interface {
	Resolve(ctx context.Context, place string) (Point, error)
}

// DistanceKM returns the great-circle (haversine) distance between two
// points in kilometers.
func DistanceKM(a, b Point) float64 {
	const earthRadiusKM = 6371.0088

	φ1 := a.Lat * math.Pi / 180.0
	φ2 := b.Lat * math.Pi / 180.0
	dφ := (b.Lat - a.Lat) * math.Pi / 180.0
	dλ := (b.Lng - a.Lng) * math.Pi / 180.0

	sinDφ := math.Sin(dφ / 2)
	sinDλ := math.Sin(dλ / 2)

	h := sinDφ*sinDφ + math.Cos(φ1)*math.Cos(φ2)*sinDλ*sinDλ
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
