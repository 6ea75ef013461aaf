package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomUseCase usecase.RoomUseCase
}

func NewRoomHandler(roomUseCase usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{
		roomUseCase: roomUseCase,
	}
}

// @Summary List rooms
// @Description List rooms matching optional capacity, amenity and location filters. When date, start_time and end_time are all given, each room carries its availability for that interval.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param min_capacity query int false "Minimum capacity"
// @Param amenities query string false "Comma-separated required amenities"
// @Param location query string false "Location substring (case-insensitive)"
// @Param date query string false "Candidate date (YYYY-MM-DD)"
// @Param start_time query string false "Candidate start time"
// @Param end_time query string false "Candidate end time"
// @Success 200 {array} resdto.RoomListItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	filter, err := parseRoomFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	probe, err := parseCandidateInterval(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time format",
		})
		return
	}

	rooms, err := h.roomUseCase.ListRooms(c.Request.Context(), filter, probe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]resdto.RoomListItemResponse, len(rooms))
	for i, ra := range rooms {
		response[i] = resdto.FromRoomAvailability(ra)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get room
// @Description Get room details by ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	rm, err := h.roomUseCase.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoom(rm))
}

func parseRoomFilter(c *gin.Context) (room.Filter, error) {
	var filter room.Filter

	if raw := c.Query("min_capacity"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity < 0 {
			return room.Filter{}, errors.New("min_capacity must be a non-negative integer")
		}
		filter.CapacityGTE = capacity
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.Amenities = append(filter.Amenities, a)
			}
		}
	}

	filter.LocationContains = strings.TrimSpace(c.Query("location"))

	return filter, nil
}

// parseCandidateInterval returns nil when no probe fields are present.
// A partial probe is treated as malformed.
func parseCandidateInterval(c *gin.Context) (*usecase.CandidateInterval, error) {
	dateStr := c.Query("date")
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")

	if dateStr == "" && startStr == "" && endStr == "" {
		return nil, nil
	}
	if dateStr == "" || startStr == "" || endStr == "" {
		return nil, errors.New("date, start_time and end_time must be given together")
	}

	date, err := booking.NewDate(dateStr)
	if err != nil {
		return nil, err
	}
	start, err := booking.ParseTimestamp(startStr)
	if err != nil {
		return nil, err
	}
	end, err := booking.ParseTimestamp(endStr)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	return &usecase.CandidateInterval{Date: date, Slot: slot}, nil
}
