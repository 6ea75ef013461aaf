package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/domain/user"
	"roombook/internal/pkg/password"

	"github.com/jinzhu/now"
)

type demoUser struct {
	id         string
	email      string
	name       string
	role       user.Role
	department string
	password   string
}

// Demo accounts from the prototype. Plaintext passwords exist only to
// derive bcrypt hashes at startup; they never leave this package.
var demoUsers = []demoUser{
	{"user-demo-001", "demo@company.com", "Demo User", user.RoleEmployee, "Engineering", "demo123"},
	{"user-admin-001", "admin@company.com", "Admin User", user.RoleAdministrator, "IT", "admin123"},
}

type seedRoom struct {
	id        string
	name      string
	capacity  int
	location  string
	amenities []string
	photoURL  string
}

var seedRooms = []seedRoom{
	{"room-001", "Innovation Hub", 10, "Building A, Floor 3",
		[]string{"projector", "whiteboard", "video_conferencing"},
		"https://example.com/rooms/innovation-hub.jpg"},
	{"room-002", "Executive Boardroom", 20, "Building A, Floor 5",
		[]string{"projector", "whiteboard", "video_conferencing", "phone"},
		"https://example.com/rooms/boardroom.jpg"},
	{"room-003", "Brainstorm Space", 6, "Building B, Floor 2",
		[]string{"whiteboard", "tv_screen"},
		"https://example.com/rooms/brainstorm.jpg"},
	{"room-004", "Team Collaboration Room", 8, "Building A, Floor 2",
		[]string{"projector", "whiteboard"},
		"https://example.com/rooms/collaboration.jpg"},
	{"room-005", "Conference Hall", 50, "Building C, Floor 1",
		[]string{"projector", "whiteboard", "video_conferencing", "phone", "sound_system"},
		"https://example.com/rooms/hall.jpg"},
	{"room-006", "Quick Meeting Pod", 4, "Building B, Floor 1",
		[]string{"whiteboard"},
		"https://example.com/rooms/pod.jpg"},
}

func SeedRooms(store *RoomStore) error {
	for _, sr := range seedRooms {
		rm, err := room.NewRoom(sr.id, sr.name, sr.capacity, sr.location, sr.amenities, room.StatusAvailable, sr.photoURL)
		if err != nil {
			return fmt.Errorf("invalid seed room %s: %w", sr.id, err)
		}
		store.Register(rm)
	}
	return nil
}

func SeedUsers(store *UserStore) error {
	for _, du := range demoUsers {
		hash, err := password.HashPassword(du.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", du.email, err)
		}
		store.Register(user.NewUser(du.id, du.email, du.name, du.role, du.department), hash)
	}
	return nil
}

// SeedBookings creates a few sample bookings on tomorrow's date so a
// fresh demo server has something to show. Anchoring to the next day
// keeps them clear of the modification lead-time window.
func SeedBookings(store *BookingStore) error {
	day := now.BeginningOfDay().AddDate(0, 0, 1)
	date := booking.DateOf(day)

	samples := []struct {
		roomID     string
		email      string
		userID     string
		start, end time.Duration
	}{
		{"room-001", "demo@company.com", "user-demo-001", 10 * time.Hour, 11 * time.Hour},
		{"room-002", "admin@company.com", "user-admin-001", 9 * time.Hour, 12 * time.Hour},
		{"room-001", "admin@company.com", "user-admin-001", 14 * time.Hour, 15*time.Hour + 30*time.Minute},
	}

	for _, s := range samples {
		slot, err := booking.NewTimeSlot(day.Add(s.start), day.Add(s.end))
		if err != nil {
			return fmt.Errorf("invalid seed slot for %s: %w", s.roomID, err)
		}
		b := booking.NewBooking(s.roomID, s.email, s.userID, date, slot, time.Now())
		if err := store.Put(context.Background(), b); err != nil {
			return err
		}
	}

	slog.Info("seeded demo bookings", "count", len(samples), "date", date.String())
	return nil
}
