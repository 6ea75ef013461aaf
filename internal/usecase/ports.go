package usecase

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/domain/user"

	"github.com/google/uuid"
)

// BookingRepository is the booking store contract. Implementations map
// failures to infra.RepositoryError kinds so the usecase layer can
// branch with infra.IsKind.
type BookingRepository interface {
	Put(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByRoom returns the room's bookings, optionally pre-filtered to
	// dates >= dateFrom. An unknown room yields an empty slice, not an
	// error.
	FindByRoom(ctx context.Context, roomID string, dateFrom *booking.Date) ([]*booking.Booking, error)
	FindByUser(ctx context.Context, email string) ([]*booking.Booking, error)
	SetStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

// RoomRepository is the read-only room catalog.
type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*room.Room, error)
	FindAll(ctx context.Context, filter room.Filter) ([]*room.Room, error)
}

type UserRepository interface {
	// FindByEmail returns the user and its password hash.
	FindByEmail(ctx context.Context, email string) (*user.User, string, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// BookingNotifier delivers confirmation/cancellation notices. Calls are
// best-effort: a returned error is logged by the caller, never turned
// into a request failure.
type BookingNotifier interface {
	SendConfirmation(ctx context.Context, b *booking.Booking, rm *room.Room) error
	SendCancellation(ctx context.Context, b *booking.Booking, rm *room.Room) error
}
