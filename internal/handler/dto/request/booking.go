package request

import (
	"roombook/internal/usecase"
)

// Timestamps travel as strings so the usecase layer can report a
// malformed value distinctly from a missing one.
type CreateBookingRequest struct {
	RoomID    string `json:"room_id"`
	UserEmail string `json:"user_email"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r CreateBookingRequest) ToParams(userID string) usecase.CreateBookingParams {
	return usecase.CreateBookingParams{
		RoomID:    r.RoomID,
		UserEmail: r.UserEmail,
		UserID:    userID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// ModifyBookingRequest carries only the fields to change; absent fields
// keep the existing booking's values.
type ModifyBookingRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

func (r ModifyBookingRequest) ToParams() usecase.ModifyBookingParams {
	return usecase.ModifyBookingParams{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
