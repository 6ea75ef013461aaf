package usecase

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Human-readable reasons returned alongside the availability verdict.
const (
	ReasonAvailable = "Room is available"
	ReasonConflict  = "Room is already booked for this time slot"
)

// AvailabilityChecker scans a room's existing bookings for an overlap
// with a candidate interval. It is read-only and deliberately does not
// consult the room catalog: an unknown room has no bookings and scans
// to "available".
type AvailabilityChecker struct {
	bookings BookingRepository
}

func NewAvailabilityChecker(bookings BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

func (c *AvailabilityChecker) IsAvailable(
	ctx context.Context,
	roomID string,
	date booking.Date,
	slot booking.TimeSlot,
) (bool, string, error) {
	return c.IsAvailableExcluding(ctx, roomID, date, slot, uuid.Nil)
}

// IsAvailableExcluding ignores the booking identified by exclude, which
// lets a modification re-check availability without colliding with the
// record it is about to replace. If the store is unreachable the check
// fails closed: the caller gets an error, never a silent approval.
func (c *AvailabilityChecker) IsAvailableExcluding(
	ctx context.Context,
	roomID string,
	date booking.Date,
	slot booking.TimeSlot,
	exclude uuid.UUID,
) (bool, string, error) {
	existing, err := c.bookings.FindByRoom(ctx, roomID, &date)
	if err != nil {
		return false, "", errs.Mark(errs.Wrap(err, "availability scan failed"), errs.ErrStoreOperationFailed)
	}

	for _, b := range existing {
		if exclude != uuid.Nil && b.ID() == exclude {
			continue
		}
		if b.ConflictsWith(date, slot) {
			return false, ReasonConflict, nil
		}
	}

	return true, ReasonAvailable, nil
}
