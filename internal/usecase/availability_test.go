//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra/memstore"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooking(t *testing.T, store *memstore.BookingStore, roomID, dateStr, startStr, endStr string) *booking.Booking {
	t.Helper()

	date, err := booking.NewDate(dateStr)
	require.NoError(t, err)
	start, err := booking.ParseTimestamp(startStr)
	require.NoError(t, err)
	end, err := booking.ParseTimestamp(endStr)
	require.NoError(t, err)
	slot, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)

	b := booking.NewBooking(roomID, "demo@company.com", "user-demo-001", date, slot, time.Now())
	require.NoError(t, store.Put(context.Background(), b))
	return b
}

func candidate(t *testing.T, dateStr, startStr, endStr string) (booking.Date, booking.TimeSlot) {
	t.Helper()

	date, err := booking.NewDate(dateStr)
	require.NoError(t, err)
	start, err := booking.ParseTimestamp(startStr)
	require.NoError(t, err)
	end, err := booking.ParseTimestamp(endStr)
	require.NoError(t, err)
	slot, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)
	return date, slot
}

func TestAvailabilityChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is available", func(t *testing.T) {
		checker := usecase.NewAvailabilityChecker(memstore.NewBookingStore())

		date, slot := candidate(t, "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		ok, reason, err := checker.IsAvailable(ctx, "room-001", date, slot)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, usecase.ReasonAvailable, reason)
	})

	t.Run("overlap is reported with a reason", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seedBooking(t, store, "room-001", "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		checker := usecase.NewAvailabilityChecker(store)

		date, slot := candidate(t, "2026-09-15", "2026-09-15T10:30", "2026-09-15T11:30")
		ok, reason, err := checker.IsAvailable(ctx, "room-001", date, slot)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, usecase.ReasonConflict, reason)
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		store := memstore.NewBookingStore()
		b := seedBooking(t, store, "room-001", "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		require.NoError(t, store.SetStatus(ctx, b.ID(), booking.StatusCancelled))
		checker := usecase.NewAvailabilityChecker(store)

		date, slot := candidate(t, "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		ok, _, err := checker.IsAvailable(ctx, "room-001", date, slot)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("excluded booking does not count as a conflict", func(t *testing.T) {
		store := memstore.NewBookingStore()
		b := seedBooking(t, store, "room-001", "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		checker := usecase.NewAvailabilityChecker(store)

		date, slot := candidate(t, "2026-09-15", "2026-09-15T10:30", "2026-09-15T11:30")

		ok, _, err := checker.IsAvailableExcluding(ctx, "room-001", date, slot, b.ID())
		require.NoError(t, err)
		assert.True(t, ok)

		// A different exclusion still sees the conflict.
		ok, _, err = checker.IsAvailableExcluding(ctx, "room-001", date, slot, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure is surfaced, never treated as free", func(t *testing.T) {
		checker := usecase.NewAvailabilityChecker(failingBookingRepo{})

		date, slot := candidate(t, "2026-09-15", "2026-09-15T10:00", "2026-09-15T11:00")
		ok, _, err := checker.IsAvailable(ctx, "room-001", date, slot)
		assert.ErrorIs(t, err, errs.ErrStoreOperationFailed)
		assert.False(t, ok)
	})
}
