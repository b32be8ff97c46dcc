package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/servicehub/backend/internal/domain/providers"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

// Default center for mock geocoding (Lagos, Nigeria)
const (
	mockCenterLat = 6.5244
	mockCenterLng = 3.3792
)

// MockProvider implements GeocodingProvider with deterministic offline
// results. The same address always maps to the same coordinates, scattered
// around a fixed city center. Used in development and tests.
type MockProvider struct{}

// NewMockProvider creates a new mock geocoding provider.
func NewMockProvider() providers.GeocodingProvider {
	return &MockProvider{}
}

// Geocode derives stable pseudo-coordinates from the address text.
func (p *MockProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	sum := sha256.Sum256([]byte(strings.ToLower(trimmed)))
	latOffset := offsetFromBytes(sum[0:8])
	lngOffset := offsetFromBytes(sum[8:16])

	return &providers.Coordinates{
		Latitude:  mockCenterLat + latOffset,
		Longitude: mockCenterLng + lngOffset,
	}, nil
}

// offsetFromBytes maps 8 bytes onto a [-0.05, 0.05) degree offset,
// roughly a 5km radius around the center
func offsetFromBytes(b []byte) float64 {
	v := binary.BigEndian.Uint64(b)
	return (float64(v%10000)/10000.0 - 0.5) * 0.1
}
