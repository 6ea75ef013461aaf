package usecase

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"
)

// CandidateInterval is a transient availability probe attached to a
// room listing; it is never persisted.
type CandidateInterval struct {
	Date booking.Date
	Slot booking.TimeSlot
}

// RoomAvailability pairs a catalog room with its availability verdict
// for the listing request.
type RoomAvailability struct {
	Room      *room.Room
	Available bool
}

type RoomUseCase interface {
	// ListRooms returns catalog rooms matching the filter. When a
	// candidate interval is given each room is annotated with its
	// availability for that interval; otherwise the catalog status is
	// used.
	ListRooms(ctx context.Context, filter room.Filter, probe *CandidateInterval) ([]*RoomAvailability, error)
	GetRoom(ctx context.Context, id string) (*room.Room, error)
}

type roomUseCaseImpl struct {
	rooms   RoomRepository
	checker *AvailabilityChecker
}

func NewRoomUseCase(rooms RoomRepository, checker *AvailabilityChecker) RoomUseCase {
	return &roomUseCaseImpl{
		rooms:   rooms,
		checker: checker,
	}
}

func (u *roomUseCaseImpl) ListRooms(ctx context.Context, filter room.Filter, probe *CandidateInterval) ([]*RoomAvailability, error) {
	rooms, err := u.rooms.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to list rooms"), errs.ErrStoreOperationFailed)
	}

	result := make([]*RoomAvailability, 0, len(rooms))
	for _, rm := range rooms {
		entry := &RoomAvailability{Room: rm, Available: rm.IsAvailable()}
		if probe != nil {
			ok, _, err := u.checker.IsAvailable(ctx, rm.ID(), probe.Date, probe.Slot)
			if err != nil {
				return nil, err
			}
			entry.Available = rm.IsAvailable() && ok
		}
		result = append(result, entry)
	}

	return result, nil
}

func (u *roomUseCaseImpl) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	rm, err := u.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to find room"), errs.ErrStoreOperationFailed)
	}
	return rm, nil
}
