package api

import (
	"errors"
	"net/http"

	"roombook/internal/domain/booking"
	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Create booking
// @Description Book a room for a time slot on a given date
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	userID, _ := middleware.GetUserID(c)

	b, err := h.bookingUseCase.CreateBooking(c.Request.Context(), req.ToParams(userID))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	b, err := h.bookingUseCase.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Modify booking
// @Description Replace a booking's date or time. The original booking is cancelled and a new one is created referencing it.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ModifyBookingRequest true "Fields to change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [put]
func (h *BookingHandler) ModifyBooking(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	var req reqdto.ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	b, err := h.bookingUseCase.ModifyBooking(c.Request.Context(), id, req.ToParams())
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel booking
// @Description Cancel a booking. The record is kept with cancelled status.
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.parseBookingID(c)
	if !ok {
		return
	}

	if err := h.bookingUseCase.CancelBooking(c.Request.Context(), id); err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get user bookings
// @Description List bookings for a user by email
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Param show_cancelled query bool false "Include cancelled bookings"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/user/{email} [get]
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	includeCancelled := c.Query("show_cancelled") == "true"

	bs, err := h.bookingUseCase.GetUserBookings(c.Request.Context(), c.Param("email"), includeCancelled)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookings(bs))
}

// @Summary Get room bookings
// @Description List bookings for a room, optionally restricted to one date
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param show_cancelled query bool false "Include cancelled bookings"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/{id}/bookings [get]
func (h *BookingHandler) GetRoomBookings(c *gin.Context) {
	var date *booking.Date
	if raw := c.Query("date"); raw != "" {
		d, err := booking.NewDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
			return
		}
		date = &d
	}

	includeCancelled := c.Query("show_cancelled") == "true"

	bs, err := h.bookingUseCase.GetRoomBookings(c.Request.Context(), c.Param("id"), date, includeCancelled)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookings(bs))
}

// @Summary Check availability
// @Description Check whether a room is free for a time slot on a date
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param room_id query string true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start time"
// @Param end_time query string true "End time"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	roomID := c.Query("room_id")
	date := c.Query("date")
	start := c.Query("start_time")
	end := c.Query("end_time")

	available, reason, err := h.bookingUseCase.CheckAvailability(c.Request.Context(), roomID, date, start, end)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    roomID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Available: available,
		Reason:    reason,
	})
}

func (h *BookingHandler) parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required field",
		})
	case errors.Is(err, errs.ErrMalformedTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time format",
		})
	case errors.Is(err, errs.ErrDurationTooShort):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Booking duration must be at least 30 minutes",
		})
	case errors.Is(err, errs.ErrDurationTooLong):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Booking duration cannot exceed 4 hours",
		})
	case errors.Is(err, errs.ErrTooLateToModify):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Bookings can only be modified at least 1 hour before the start time",
		})
	case errors.Is(err, errs.ErrTooLateToCancel):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Bookings can only be cancelled at least 1 hour before the start time",
		})
	case errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, errs.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, errs.ErrBookingNotActive):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is not active",
		})
	case errors.Is(err, errs.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room is already booked for this time slot",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
