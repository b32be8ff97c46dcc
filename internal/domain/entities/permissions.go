package entities

// Capability checks collapse role handling into pure functions over the
// identity and booking data, independent of transport.

// CanView reports whether the caller may see the booking: customers see
// their own bookings, providers see bookings assigned to them plus the
// open marketplace in their own category, admins see everything.
func CanView(caller *Identity, booking *Booking) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.Role == RoleCustomer {
		return booking.CustomerID == caller.ID
	}
	if caller.IsProvider() {
		if booking.Assigned() && *booking.ProviderID == caller.ID {
			return true
		}
		return booking.Status == BookingStatusPending &&
			booking.ServiceCategory == caller.ServiceCategory
	}
	return false
}

// CanTransition reports whether the caller may drive the booking to the
// target status. The transition itself must also be valid per the status
// graph; this only answers the authorization question.
func CanTransition(caller *Identity, booking *Booking, target BookingStatus) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.Role == RoleCustomer {
		// Customers may only cancel their own bookings
		return target == BookingStatusCancelled && booking.CustomerID == caller.ID
	}
	if caller.IsProvider() {
		if booking.Assigned() {
			return *booking.ProviderID == caller.ID
		}
		// Unassigned marketplace booking: any provider in the matching
		// category may act (accepting claims the slot)
		return booking.MarketplacePending() &&
			booking.ServiceCategory == caller.ServiceCategory
	}
	return false
}

// CanRate reports whether the caller may attach a rating and review.
// Only the owning customer may rate, and only once the work is completed.
func CanRate(caller *Identity, booking *Booking) bool {
	if caller.Role != RoleCustomer && !caller.IsAdmin() {
		return false
	}
	if caller.Role == RoleCustomer && booking.CustomerID != caller.ID {
		return false
	}
	return booking.Status == BookingStatusCompleted
}
