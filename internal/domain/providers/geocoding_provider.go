package providers

import (
	"context"
)

// GeocodingProvider defines the interface for address geocoding services
type GeocodingProvider interface {
	// Geocode converts an address to coordinates
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
