package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
)

// RoomStore is the in-memory room catalog. Rooms are registered once at
// startup and read-only afterwards.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*room.Room),
	}
}

func (s *RoomStore) Register(rm *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[rm.ID()] = rm
}

func (s *RoomStore) FindByID(_ context.Context, id string) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rm, ok := s.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (s *RoomStore) FindAll(_ context.Context, filter room.Filter) ([]*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*room.Room, 0, len(s.rooms))
	for _, rm := range s.rooms {
		if filter.Matches(rm) {
			result = append(result, rm)
		}
	}

	slices.SortFunc(result, func(a, b *room.Room) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return result, nil
}
