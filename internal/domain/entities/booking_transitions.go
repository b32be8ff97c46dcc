package entities

// statusTransitions defines the allowed booking status transitions as a
// directed graph. Terminal states map to an empty slice.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAccepted, BookingStatusDeclined, BookingStatusCancelled},
	BookingStatusAccepted:   {BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
	BookingStatusDeclined:   {},
}

// ValidStatus reports whether s is a known booking status
func ValidStatus(s BookingStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminalStatus reports whether no further transitions are possible from s
func IsTerminalStatus(s BookingStatus) bool {
	allowed, ok := statusTransitions[s]
	return ok && len(allowed) == 0
}

// CanTransitionStatus reports whether from -> to is an allowed status
// transition. Re-applying the current status is not a transition.
func CanTransitionStatus(from, to BookingStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ClaimsProvider reports whether entering the target status claims the
// provider slot on a previously unassigned booking
func ClaimsProvider(to BookingStatus) bool {
	return to == BookingStatusAccepted || to == BookingStatusConfirmed
}
