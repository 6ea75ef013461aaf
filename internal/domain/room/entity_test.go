//go:build unit

package room_test

import (
	"testing"

	"roombook/internal/domain/room"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(t *testing.T) []*room.Room {
	t.Helper()

	specs := []struct {
		id, name  string
		capacity  int
		location  string
		amenities []string
	}{
		{"room-001", "Innovation Hub", 10, "Building A, Floor 3", []string{"projector", "whiteboard"}},
		{"room-002", "Board Room", 20, "Building A, Floor 5", []string{"projector", "phone", "video"}},
		{"room-003", "Brainstorm Space", 6, "Building B, Floor 1", []string{"whiteboard"}},
	}

	rooms := make([]*room.Room, 0, len(specs))
	for _, s := range specs {
		rm, err := room.NewRoom(s.id, s.name, s.capacity, s.location, s.amenities, room.StatusAvailable, "")
		require.NoError(t, err)
		rooms = append(rooms, rm)
	}
	return rooms
}

func TestNewRoomValidation(t *testing.T) {
	_, err := room.NewRoom("", "Nameless", 4, "", nil, room.StatusAvailable, "")
	assert.ErrorIs(t, err, room.ErrEmptyID)

	_, err = room.NewRoom("room-001", "Innovation Hub", 0, "", nil, room.StatusAvailable, "")
	assert.ErrorIs(t, err, room.ErrInvalidCapacity)

	rm, err := room.NewRoom("room-001", "Innovation Hub", 4, "", nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, room.StatusAvailable, rm.Status())
}

func TestHasAmenities(t *testing.T) {
	rm, err := room.NewRoom("room-002", "Board Room", 20, "Building A, Floor 5",
		[]string{"projector", "phone", "video"}, room.StatusAvailable, "")
	require.NoError(t, err)

	assert.True(t, rm.HasAmenities(nil))
	assert.True(t, rm.HasAmenities([]string{"phone"}))
	assert.True(t, rm.HasAmenities([]string{"projector", "video"}))
	assert.False(t, rm.HasAmenities([]string{"projector", "kitchen"}))
}

func TestFilterMatches(t *testing.T) {
	rooms := catalog(t)

	tests := []struct {
		name   string
		filter room.Filter
		want   []string
	}{
		{
			name:   "zero filter matches everything",
			filter: room.Filter{},
			want:   []string{"room-001", "room-002", "room-003"},
		},
		{
			name:   "capacity is a lower bound",
			filter: room.Filter{CapacityGTE: 10},
			want:   []string{"room-001", "room-002"},
		},
		{
			name:   "all listed amenities are required",
			filter: room.Filter{Amenities: []string{"projector", "phone"}},
			want:   []string{"room-002"},
		},
		{
			name:   "location match is a case-insensitive substring",
			filter: room.Filter{LocationContains: "building b"},
			want:   []string{"room-003"},
		},
		{
			name:   "criteria combine with AND",
			filter: room.Filter{CapacityGTE: 10, Amenities: []string{"whiteboard"}},
			want:   []string{"room-001"},
		},
		{
			name:   "no match yields an empty result",
			filter: room.Filter{CapacityGTE: 100},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0, len(rooms))
			for _, rm := range rooms {
				if tt.filter.Matches(rm) {
					got = append(got, rm.ID())
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filtered room ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
