package providers

import (
	"context"

	"github.com/servicehub/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to booking
// lifecycle events. Delivery is best-effort: no persistence, no retry.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Channel naming for the notifier's logical rooms
const (
	// ProvidersChannel is the shared marketplace channel reaching every
	// connected provider when no specific provider is targeted
	ProvidersChannel = "providers"

	// identityChannelPrefix prefixes per-identity channels
	identityChannelPrefix = "user:"
)

// IdentityChannel returns the channel name reaching a specific customer
// or provider
func IdentityChannel(identityID string) string {
	return identityChannelPrefix + identityID
}
