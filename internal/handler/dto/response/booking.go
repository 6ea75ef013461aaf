package response

import (
	"time"

	"roombook/internal/domain/booking"

	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02T15:04:05"

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       string     `json:"room_id"`
	UserEmail    string     `json:"user_email"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Status       string     `json:"status"`
	ModifiedFrom *uuid.UUID `json:"modified_from,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	start, end := b.Slot().Format(timestampLayout)
	return &BookingResponse{
		ID:           b.ID(),
		RoomID:       b.RoomID(),
		UserEmail:    b.UserEmail(),
		Date:         b.Date().String(),
		StartTime:    start,
		EndTime:      end,
		Status:       string(b.Status()),
		ModifiedFrom: b.ModifiedFrom(),
		CreatedAt:    b.CreatedAt(),
	}
}

func FromBookings(bs []*booking.Booking) []*BookingResponse {
	result := make([]*BookingResponse, len(bs))
	for i, b := range bs {
		result[i] = FromBooking(b)
	}
	return result
}
