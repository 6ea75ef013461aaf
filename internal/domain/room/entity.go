package room

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEmptyID         = errors.New("room id cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

func (s Status) String() string {
	return string(s)
}

// Room is read-only from the booking core's perspective; its lifecycle
// is managed by the catalog.
type Room struct {
	id        string
	name      string
	capacity  int
	location  string
	amenities []string
	status    Status
	photoURL  string
}

func NewRoom(id, name string, capacity int, location string, amenities []string, status Status, photoURL string) (*Room, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if status == "" {
		status = StatusAvailable
	}

	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		location:  location,
		amenities: amenities,
		status:    status,
		photoURL:  photoURL,
	}, nil
}

func (r *Room) HasAmenities(required []string) bool {
	for _, a := range required {
		if !slices.Contains(r.amenities, a) {
			return false
		}
	}
	return true
}

func (r *Room) IsAvailable() bool {
	return r.status == StatusAvailable
}

func (r *Room) ID() string          { return r.id }
func (r *Room) Name() string        { return r.name }
func (r *Room) Capacity() int       { return r.capacity }
func (r *Room) Location() string    { return r.location }
func (r *Room) Amenities() []string { return r.amenities }
func (r *Room) Status() Status      { return r.status }
func (r *Room) PhotoURL() string    { return r.photoURL }

// Filter narrows the catalog listing. Zero values mean "no constraint".
type Filter struct {
	CapacityGTE      int
	Amenities        []string
	LocationContains string
}

func (f Filter) IsZero() bool {
	return f.CapacityGTE == 0 && len(f.Amenities) == 0 && f.LocationContains == ""
}

func (f Filter) Matches(r *Room) bool {
	if f.CapacityGTE > 0 && r.Capacity() < f.CapacityGTE {
		return false
	}
	if len(f.Amenities) > 0 && !r.HasAmenities(f.Amenities) {
		return false
	}
	if f.LocationContains != "" &&
		!strings.Contains(strings.ToLower(r.Location()), strings.ToLower(f.LocationContains)) {
		return false
	}
	return true
}
