package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyCancelled = errors.New("booking is already cancelled")

// Booking is owned by the booking store; the availability checker only
// ever reads it. State transitions are confirmed -> cancelled, nothing
// else. A modification never edits a booking in place: the old record is
// cancelled and a new one is created carrying a modifiedFrom reference.
type Booking struct {
	id           uuid.UUID
	roomID       string
	userEmail    string
	userID       string
	date         Date
	slot         TimeSlot
	status       Status
	modifiedFrom *uuid.UUID
	createdAt    time.Time
}

func NewBooking(roomID, userEmail, userID string, date Date, slot TimeSlot, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		userEmail: userEmail,
		userID:    userID,
		date:      date,
		slot:      slot,
		status:    StatusConfirmed,
		createdAt: now,
	}
}

// NewModifiedBooking builds the replacement record for a modification,
// keeping requester identity and room, and recording the lineage.
func NewModifiedBooking(prev *Booking, date Date, slot TimeSlot, now time.Time) *Booking {
	prevID := prev.id
	return &Booking{
		id:           uuid.New(),
		roomID:       prev.roomID,
		userEmail:    prev.userEmail,
		userID:       prev.userID,
		date:         date,
		slot:         slot,
		status:       StatusConfirmed,
		modifiedFrom: &prevID,
		createdAt:    now,
	}
}

func Reconstruct(
	id uuid.UUID,
	roomID, userEmail, userID string,
	date Date,
	slot TimeSlot,
	status Status,
	modifiedFrom *uuid.UUID,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		roomID:       roomID,
		userEmail:    userEmail,
		userID:       userID,
		date:         date,
		slot:         slot,
		status:       status,
		modifiedFrom: modifiedFrom,
		createdAt:    createdAt,
	}
}

func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

// ConflictsWith tests a candidate interval against this booking.
// Cancelled bookings never conflict, and dates must match exactly.
func (b *Booking) ConflictsWith(date Date, slot TimeSlot) bool {
	if !b.IsActive() {
		return false
	}
	if !b.date.Equal(date) {
		return false
	}
	return b.slot.Overlaps(slot)
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) RoomID() string           { return b.roomID }
func (b *Booking) UserEmail() string        { return b.userEmail }
func (b *Booking) UserID() string           { return b.userID }
func (b *Booking) Date() Date               { return b.date }
func (b *Booking) Slot() TimeSlot           { return b.slot }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) ModifiedFrom() *uuid.UUID { return b.modifiedFrom }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
