package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every defined booking status must be exactly one of active or past. The two
// predicates use finite status lists, so adding a status without extending one
// of them would leave bookings invisible to both dashboards.
func TestBookingStatusPartitionIsComplete(t *testing.T) {
	for _, status := range BookingStatuses {
		b := Booking{Status: status}
		assert.Truef(t, b.IsActive() != b.IsPast(),
			"status %q must be exactly one of active/past (active=%v past=%v)",
			status, b.IsActive(), b.IsPast())
	}

	assert.Len(t, BookingStatuses, len(ActiveStatuses)+len(PastStatuses))
}

func TestBookingPredicates(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).IsActive())
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: BookingStatusCompleted}).IsPast())
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsPast())

	assert.False(t, (&Booking{Status: BookingStatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusPending}).IsPast())
}

func TestSessionIsAvailable(t *testing.T) {
	assert.True(t, (&Session{Status: SessionStatusPublished}).IsAvailable())
	assert.False(t, (&Session{Status: SessionStatusDraft}).IsAvailable())
	assert.False(t, (&Session{Status: SessionStatusCancelled}).IsAvailable())
}
