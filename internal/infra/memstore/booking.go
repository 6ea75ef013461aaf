package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"

	"github.com/google/uuid"
)

// BookingStore is the in-memory booking store used by the demo server
// and the tests. Entities are cloned on the way in and out so callers
// can never mutate stored state behind the store's back.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*booking.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[uuid.UUID]*booking.Booking),
	}
}

func (s *BookingStore) Put(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func (s *BookingStore) FindByRoom(_ context.Context, roomID string, dateFrom *booking.Date) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*booking.Booking
	for _, b := range s.bookings {
		if b.RoomID() != roomID {
			continue
		}
		if dateFrom != nil && b.Date().Less(*dateFrom) {
			continue
		}
		result = append(result, cloneBooking(b))
	}

	sortByStart(result)
	return result, nil
}

func (s *BookingStore) FindByUser(_ context.Context, email string) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*booking.Booking
	for _, b := range s.bookings {
		if b.UserEmail() == email {
			result = append(result, cloneBooking(b))
		}
	}

	sortByStart(result)
	return result, nil
}

func (s *BookingStore) SetStatus(_ context.Context, id uuid.UUID, status booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	s.bookings[id] = booking.Reconstruct(
		b.ID(), b.RoomID(), b.UserEmail(), b.UserID(),
		b.Date(), b.Slot(), status, b.ModifiedFrom(), b.CreatedAt(),
	)
	return nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(
		b.ID(), b.RoomID(), b.UserEmail(), b.UserID(),
		b.Date(), b.Slot(), b.Status(), b.ModifiedFrom(), b.CreatedAt(),
	)
}

func sortByStart(bs []*booking.Booking) {
	slices.SortFunc(bs, func(a, b *booking.Booking) int {
		if c := a.Slot().Start().Compare(b.Slot().Start()); c != 0 {
			return c
		}
		// Stable order for identical starts.
		return strings.Compare(a.ID().String(), b.ID().String())
	})
}
