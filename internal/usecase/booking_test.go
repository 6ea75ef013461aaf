//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/infra/memstore"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier counts deliveries without sending anything.
type recordingNotifier struct {
	mu            sync.Mutex
	confirmations int
	cancellations int
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, _ *booking.Booking, _ *room.Room) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations++
	return nil
}

func (n *recordingNotifier) SendCancellation(_ context.Context, _ *booking.Booking, _ *room.Room) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations++
	return nil
}

// failingBookingRepo simulates an unreachable store.
type failingBookingRepo struct{}

var errStoreDown = errors.New("store down")

func (failingBookingRepo) Put(context.Context, *booking.Booking) error { return errStoreDown }
func (failingBookingRepo) FindByID(context.Context, uuid.UUID) (*booking.Booking, error) {
	return nil, infra.WrapRepoErr("find failed", errStoreDown)
}
func (failingBookingRepo) FindByRoom(context.Context, string, *booking.Date) ([]*booking.Booking, error) {
	return nil, infra.WrapRepoErr("scan failed", errStoreDown)
}
func (failingBookingRepo) FindByUser(context.Context, string) ([]*booking.Booking, error) {
	return nil, infra.WrapRepoErr("scan failed", errStoreDown)
}
func (failingBookingRepo) SetStatus(context.Context, uuid.UUID, booking.Status) error {
	return errStoreDown
}

type bookingFixture struct {
	uc       usecase.BookingUseCase
	bookings *memstore.BookingStore
	clock    *clock.MockClock
	notifier *recordingNotifier
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	bookings := memstore.NewBookingStore()
	rooms := memstore.NewRoomStore()
	require.NoError(t, memstore.SeedRooms(rooms))

	clk := clock.NewMockClock(time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	checker := usecase.NewAvailabilityChecker(bookings)

	return &bookingFixture{
		uc:       usecase.NewBookingUseCase(bookings, rooms, checker, notifier, clk),
		bookings: bookings,
		clock:    clk,
		notifier: notifier,
	}
}

func validParams() usecase.CreateBookingParams {
	return usecase.CreateBookingParams{
		RoomID:    "room-001",
		UserEmail: "demo@company.com",
		UserID:    "user-demo-001",
		Date:      "2026-09-15",
		StartTime: "2026-09-15T10:00:00",
		EndTime:   "2026-09-15T11:00:00",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request creates a confirmed booking", func(t *testing.T) {
		f := newBookingFixture(t)

		b, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, "room-001", b.RoomID())
		assert.Equal(t, 1, f.notifier.confirmations)

		stored, err := f.bookings.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsActive())
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		overlapping := validParams()
		overlapping.StartTime = "2026-09-15T10:30:00"
		overlapping.EndTime = "2026-09-15T11:30:00"
		overlapping.UserEmail = "admin@company.com"

		_, err = f.uc.CreateBooking(ctx, overlapping)
		assert.ErrorIs(t, err, errs.ErrBookingConflict)
	})

	t.Run("back-to-back bookings are allowed", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		adjacent := validParams()
		adjacent.StartTime = "2026-09-15T11:00:00"
		adjacent.EndTime = "2026-09-15T12:00:00"

		_, err = f.uc.CreateBooking(ctx, adjacent)
		assert.NoError(t, err)
	})

	t.Run("same slot in another room is allowed", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		other := validParams()
		other.RoomID = "room-002"

		_, err = f.uc.CreateBooking(ctx, other)
		assert.NoError(t, err)
	})

	t.Run("same slot on another date is allowed", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		other := validParams()
		other.Date = "2026-09-16"
		other.StartTime = "2026-09-16T10:00:00"
		other.EndTime = "2026-09-16T11:00:00"

		_, err = f.uc.CreateBooking(ctx, other)
		assert.NoError(t, err)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		for _, mutate := range []func(*usecase.CreateBookingParams){
			func(p *usecase.CreateBookingParams) { p.RoomID = "" },
			func(p *usecase.CreateBookingParams) { p.UserEmail = "  " },
			func(p *usecase.CreateBookingParams) { p.Date = "" },
			func(p *usecase.CreateBookingParams) { p.StartTime = "" },
			func(p *usecase.CreateBookingParams) { p.EndTime = "" },
		} {
			params := validParams()
			mutate(&params)
			_, err := f.uc.CreateBooking(ctx, params)
			assert.ErrorIs(t, err, errs.ErrMissingField)
		}
	})

	t.Run("malformed timestamps are rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		params := validParams()
		params.StartTime = "10 o'clock"
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, errs.ErrMalformedTimestamp)

		params = validParams()
		params.Date = "Sept 15"
		_, err = f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, errs.ErrMalformedTimestamp)
	})

	t.Run("duration bounds are enforced", func(t *testing.T) {
		f := newBookingFixture(t)

		tooShort := validParams()
		tooShort.EndTime = "2026-09-15T10:29:00"
		_, err := f.uc.CreateBooking(ctx, tooShort)
		assert.ErrorIs(t, err, errs.ErrDurationTooShort)

		tooLong := validParams()
		tooLong.EndTime = "2026-09-15T14:01:00"
		_, err = f.uc.CreateBooking(ctx, tooLong)
		assert.ErrorIs(t, err, errs.ErrDurationTooLong)

		// Reversed interval reads as a negative duration.
		reversed := validParams()
		reversed.StartTime = "2026-09-15T11:00:00"
		reversed.EndTime = "2026-09-15T10:00:00"
		_, err = f.uc.CreateBooking(ctx, reversed)
		assert.ErrorIs(t, err, errs.ErrDurationTooShort)
	})

	t.Run("unreachable store fails closed", func(t *testing.T) {
		rooms := memstore.NewRoomStore()
		require.NoError(t, memstore.SeedRooms(rooms))
		checker := usecase.NewAvailabilityChecker(failingBookingRepo{})
		clk := clock.NewMockClock(time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC))
		uc := usecase.NewBookingUseCase(failingBookingRepo{}, rooms, checker, &recordingNotifier{}, clk)

		_, err := uc.CreateBooking(ctx, validParams())
		assert.ErrorIs(t, err, errs.ErrStoreOperationFailed)
	})
}

func TestModifyBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("modification cancels the original and creates a replacement", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		newStart := "2026-09-15T14:00:00"
		newEnd := "2026-09-15T15:00:00"
		replacement, err := f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.NoError(t, err)

		assert.NotEqual(t, original.ID(), replacement.ID())
		require.NotNil(t, replacement.ModifiedFrom())
		assert.Equal(t, original.ID(), *replacement.ModifiedFrom())
		assert.True(t, replacement.IsActive())

		stored, err := f.bookings.FindByID(ctx, original.ID())
		require.NoError(t, err)
		assert.False(t, stored.IsActive())
	})

	t.Run("date-only change moves the slot to the new date", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		newDate := "2026-09-16"
		replacement, err := f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{
			Date: &newDate,
		})
		require.NoError(t, err)

		// Time of day carries over; the timestamps follow the new date.
		assert.Equal(t, newDate, replacement.Date().String())
		assert.True(t, replacement.Slot().Start().Equal(time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)))
		assert.True(t, replacement.Slot().End().Equal(time.Date(2026, 9, 16, 11, 0, 0, 0, time.UTC)))
	})

	t.Run("date-only change collides with bookings on the target date", func(t *testing.T) {
		f := newBookingFixture(t)

		taken := validParams()
		taken.Date = "2026-09-16"
		taken.StartTime = "2026-09-16T10:00:00"
		taken.EndTime = "2026-09-16T11:00:00"
		_, err := f.uc.CreateBooking(ctx, taken)
		require.NoError(t, err)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		newDate := "2026-09-16"
		_, err = f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{Date: &newDate})
		assert.ErrorIs(t, err, errs.ErrBookingConflict)

		bs, err := f.uc.GetRoomBookings(ctx, "room-001", nil, false)
		require.NoError(t, err)
		for _, b := range bs {
			assert.Equal(t, b.Date().String(), b.Slot().Start().Format("2006-01-02"))
		}
	})

	t.Run("self-overlap does not block modification", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		// Shift by 30 minutes into the original's own window.
		newStart := "2026-09-15T10:30:00"
		newEnd := "2026-09-15T11:30:00"
		_, err = f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		assert.NoError(t, err)
	})

	t.Run("conflict with another booking blocks modification", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		other := validParams()
		other.StartTime = "2026-09-15T14:00:00"
		other.EndTime = "2026-09-15T15:00:00"
		_, err = f.uc.CreateBooking(ctx, other)
		require.NoError(t, err)

		newStart := "2026-09-15T14:30:00"
		newEnd := "2026-09-15T15:30:00"
		_, err = f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		assert.ErrorIs(t, err, errs.ErrBookingConflict)

		// Failed modification leaves the original untouched.
		stored, err := f.bookings.FindByID(ctx, original.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsActive())
	})

	t.Run("lead time window is enforced against the original start", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		newStart := "2026-09-15T14:00:00"
		newEnd := "2026-09-15T15:00:00"
		params := usecase.ModifyBookingParams{StartTime: &newStart, EndTime: &newEnd}

		// 61 minutes before start: allowed.
		f.clock.Set(time.Date(2026, 9, 15, 8, 59, 0, 0, time.UTC))
		replacement, err := f.uc.ModifyBooking(ctx, original.ID(), params)
		require.NoError(t, err)

		// 59 minutes before the replacement's start: rejected.
		f.clock.Set(time.Date(2026, 9, 15, 13, 1, 0, 0, time.UTC))
		_, err = f.uc.ModifyBooking(ctx, replacement.ID(), params)
		assert.ErrorIs(t, err, errs.ErrTooLateToModify)
	})

	t.Run("cancelled booking cannot be modified", func(t *testing.T) {
		f := newBookingFixture(t)

		original, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)
		require.NoError(t, f.uc.CancelBooking(ctx, original.ID()))

		newDate := "2026-09-16"
		_, err = f.uc.ModifyBooking(ctx, original.ID(), usecase.ModifyBookingParams{Date: &newDate})
		assert.ErrorIs(t, err, errs.ErrBookingNotActive)
	})

	t.Run("unknown booking returns not found", func(t *testing.T) {
		f := newBookingFixture(t)

		newDate := "2026-09-16"
		_, err := f.uc.ModifyBooking(ctx, uuid.New(), usecase.ModifyBookingParams{Date: &newDate})
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("active booking is cancelled and kept", func(t *testing.T) {
		f := newBookingFixture(t)

		b, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		require.NoError(t, f.uc.CancelBooking(ctx, b.ID()))
		assert.Equal(t, 1, f.notifier.cancellations)

		stored, err := f.bookings.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
	})

	t.Run("cancelled slot becomes bookable again", func(t *testing.T) {
		f := newBookingFixture(t)

		b, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)
		require.NoError(t, f.uc.CancelBooking(ctx, b.ID()))

		again := validParams()
		again.UserEmail = "admin@company.com"
		_, err = f.uc.CreateBooking(ctx, again)
		assert.NoError(t, err)
	})

	t.Run("lead time window is enforced", func(t *testing.T) {
		f := newBookingFixture(t)

		b, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 9, 15, 9, 1, 0, 0, time.UTC))
		assert.ErrorIs(t, f.uc.CancelBooking(ctx, b.ID()), errs.ErrTooLateToCancel)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		b, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)
		require.NoError(t, f.uc.CancelBooking(ctx, b.ID()))

		assert.ErrorIs(t, f.uc.CancelBooking(ctx, b.ID()), errs.ErrBookingNotActive)
	})
}

func TestListingOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("user listing hides cancelled bookings by default", func(t *testing.T) {
		f := newBookingFixture(t)

		b1, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		second := validParams()
		second.StartTime = "2026-09-15T14:00:00"
		second.EndTime = "2026-09-15T15:00:00"
		_, err = f.uc.CreateBooking(ctx, second)
		require.NoError(t, err)

		require.NoError(t, f.uc.CancelBooking(ctx, b1.ID()))

		active, err := f.uc.GetUserBookings(ctx, "demo@company.com", false)
		require.NoError(t, err)
		assert.Len(t, active, 1)

		all, err := f.uc.GetUserBookings(ctx, "demo@company.com", true)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("room listing filters by exact date", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		other := validParams()
		other.Date = "2026-09-16"
		other.StartTime = "2026-09-16T10:00:00"
		other.EndTime = "2026-09-16T11:00:00"
		_, err = f.uc.CreateBooking(ctx, other)
		require.NoError(t, err)

		date, err := booking.NewDate("2026-09-15")
		require.NoError(t, err)

		onDate, err := f.uc.GetRoomBookings(ctx, "room-001", &date, false)
		require.NoError(t, err)
		assert.Len(t, onDate, 1)

		all, err := f.uc.GetRoomBookings(ctx, "room-001", nil, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("free slot reports available", func(t *testing.T) {
		f := newBookingFixture(t)

		ok, reason, err := f.uc.CheckAvailability(ctx, "room-001", "2026-09-15", "2026-09-15T10:00:00", "2026-09-15T11:00:00")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, usecase.ReasonAvailable, reason)
	})

	t.Run("booked slot reports the conflict", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.CreateBooking(ctx, validParams())
		require.NoError(t, err)

		ok, reason, err := f.uc.CheckAvailability(ctx, "room-001", "2026-09-15", "2026-09-15T10:30:00", "2026-09-15T11:30:00")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, usecase.ReasonConflict, reason)
	})

	t.Run("unknown room scans to available", func(t *testing.T) {
		f := newBookingFixture(t)

		ok, _, err := f.uc.CheckAvailability(ctx, "room-unknown", "2026-09-15", "2026-09-15T10:00:00", "2026-09-15T11:00:00")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("malformed query is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		_, _, err := f.uc.CheckAvailability(ctx, "room-001", "2026-09-15", "later", "2026-09-15T11:00:00")
		assert.ErrorIs(t, err, errs.ErrMalformedTimestamp)

		_, _, err = f.uc.CheckAvailability(ctx, "", "2026-09-15", "2026-09-15T10:00:00", "2026-09-15T11:00:00")
		assert.ErrorIs(t, err, errs.ErrMissingField)
	})
}
