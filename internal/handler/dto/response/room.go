package response

import (
	"roombook/internal/domain/room"
	"roombook/internal/usecase"
)

type RoomResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
	Status    string   `json:"status"`
	PhotoURL  string   `json:"photo_url,omitempty"`
}

// RoomListItemResponse adds the availability verdict for the requested
// interval, or the catalog status when no interval was given.
type RoomListItemResponse struct {
	RoomResponse
	IsAvailable bool `json:"is_available"`
}

func FromRoom(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:        rm.ID(),
		Name:      rm.Name(),
		Capacity:  rm.Capacity(),
		Location:  rm.Location(),
		Amenities: rm.Amenities(),
		Status:    string(rm.Status()),
		PhotoURL:  rm.PhotoURL(),
	}
}

func FromRoomAvailability(ra *usecase.RoomAvailability) RoomListItemResponse {
	return RoomListItemResponse{
		RoomResponse: FromRoom(ra.Room),
		IsAvailable:  ra.Available,
	}
}
