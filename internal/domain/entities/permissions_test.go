package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanView(t *testing.T) {
	customer := &Identity{ID: "cust-1", Role: RoleCustomer}
	plumber := &Identity{ID: "prov-1", Role: RoleProvider, ServiceCategory: CategoryPlumber}
	electrician := &Identity{ID: "prov-2", Role: RoleProvider, ServiceCategory: CategoryElectrician}
	admin := &Identity{ID: "admin-1", Role: RoleAdmin}

	pendingPlumbing := &Booking{
		ID:              "b-1",
		CustomerID:      "cust-1",
		ServiceCategory: CategoryPlumber,
		Status:          BookingStatusPending,
	}
	assignedToPlumber := &Booking{
		ID:              "b-2",
		CustomerID:      "cust-2",
		ProviderID:      strPtr("prov-1"),
		ServiceCategory: CategoryPlumber,
		Status:          BookingStatusAccepted,
	}

	t.Run("customer sees own booking only", func(t *testing.T) {
		assert.True(t, CanView(customer, pendingPlumbing))
		assert.False(t, CanView(customer, assignedToPlumber))
	})

	t.Run("provider sees matching-category marketplace", func(t *testing.T) {
		assert.True(t, CanView(plumber, pendingPlumbing))
		assert.False(t, CanView(electrician, pendingPlumbing))
	})

	t.Run("provider sees assigned bookings in any status", func(t *testing.T) {
		assert.True(t, CanView(plumber, assignedToPlumber))
		assert.False(t, CanView(electrician, assignedToPlumber))
	})

	t.Run("admin sees everything", func(t *testing.T) {
		assert.True(t, CanView(admin, pendingPlumbing))
		assert.True(t, CanView(admin, assignedToPlumber))
	})
}

func TestCanTransition(t *testing.T) {
	customer := &Identity{ID: "cust-1", Role: RoleCustomer}
	plumber := &Identity{ID: "prov-1", Role: RoleProvider, ServiceCategory: CategoryPlumber}
	electrician := &Identity{ID: "prov-2", Role: RoleProvider, ServiceCategory: CategoryElectrician}
	admin := &Identity{ID: "admin-1", Role: RoleAdmin}

	marketplace := &Booking{
		ID:              "b-1",
		CustomerID:      "cust-1",
		ServiceCategory: CategoryPlumber,
		Status:          BookingStatusPending,
	}
	assigned := &Booking{
		ID:              "b-2",
		CustomerID:      "cust-1",
		ProviderID:      strPtr("prov-1"),
		ServiceCategory: CategoryPlumber,
		Status:          BookingStatusAccepted,
	}

	t.Run("matching provider may claim marketplace booking", func(t *testing.T) {
		assert.True(t, CanTransition(plumber, marketplace, BookingStatusAccepted))
		assert.False(t, CanTransition(electrician, marketplace, BookingStatusAccepted))
	})

	t.Run("only the assigned provider drives assigned bookings", func(t *testing.T) {
		assert.True(t, CanTransition(plumber, assigned, BookingStatusInProgress))
		assert.False(t, CanTransition(electrician, assigned, BookingStatusInProgress))
	})

	t.Run("customer may only cancel own booking", func(t *testing.T) {
		assert.True(t, CanTransition(customer, marketplace, BookingStatusCancelled))
		assert.False(t, CanTransition(customer, marketplace, BookingStatusAccepted))
		other := &Identity{ID: "cust-2", Role: RoleCustomer}
		assert.False(t, CanTransition(other, marketplace, BookingStatusCancelled))
	})

	t.Run("admin may drive any transition", func(t *testing.T) {
		assert.True(t, CanTransition(admin, marketplace, BookingStatusDeclined))
		assert.True(t, CanTransition(admin, assigned, BookingStatusCancelled))
	})
}

func TestCanRate(t *testing.T) {
	customer := &Identity{ID: "cust-1", Role: RoleCustomer}
	provider := &Identity{ID: "prov-1", Role: RoleProvider, ServiceCategory: CategoryPlumber}

	completed := &Booking{
		ID:         "b-1",
		CustomerID: "cust-1",
		ProviderID: strPtr("prov-1"),
		Status:     BookingStatusCompleted,
	}
	inProgress := &Booking{
		ID:         "b-2",
		CustomerID: "cust-1",
		ProviderID: strPtr("prov-1"),
		Status:     BookingStatusInProgress,
	}

	assert.True(t, CanRate(customer, completed))
	assert.False(t, CanRate(customer, inProgress), "rating requires completed status")
	assert.False(t, CanRate(provider, completed), "providers do not rate")

	stranger := &Identity{ID: "cust-2", Role: RoleCustomer}
	assert.False(t, CanRate(stranger, completed))
}
