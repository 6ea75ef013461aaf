package pgstore

import (
	"context"
	"errors"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingStore persists bookings in Postgres. The date column is kept
// alongside the timestamps because conflict detection is scoped to an
// exact calendar date.
type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

const bookingColumns = `id, room_id, user_email, user_id, date::text, start_time, end_time, status, modified_from, created_at`

func (s *BookingStore) Put(ctx context.Context, b *booking.Booking) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bookings (id, room_id, user_email, user_id, date, start_time, end_time, status, modified_from, created_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			room_id = EXCLUDED.room_id,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status`,
		b.ID(), b.RoomID(), b.UserEmail(), b.UserID(), b.Date().String(),
		b.Slot().Start(), b.Slot().End(), b.Status().String(), b.ModifiedFrom(), b.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to put booking", err)
	}
	return nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

func (s *BookingStore) FindByRoom(ctx context.Context, roomID string, dateFrom *booking.Date) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = $1`
	args := []any{roomID}
	if dateFrom != nil {
		query += ` AND date >= $2::date`
		args = append(args, dateFrom.String())
	}
	query += ` ORDER BY start_time, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by room", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (s *BookingStore) FindByUser(ctx context.Context, email string) ([]*booking.Booking, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_email = $1 ORDER BY start_time, id`, email)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (s *BookingStore) SetStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	tag, err := s.pool.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id           uuid.UUID
		roomID       string
		userEmail    string
		userID       string
		dateStr      string
		startTime    time.Time
		endTime      time.Time
		statusStr    string
		modifiedFrom *uuid.UUID
		createdAt    time.Time
	)

	if err := row.Scan(&id, &roomID, &userEmail, &userID, &dateStr, &startTime, &endTime, &statusStr, &modifiedFrom, &createdAt); err != nil {
		return nil, err
	}

	date, err := booking.NewDate(dateStr)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(id, roomID, userEmail, userID, date, slot, booking.Status(statusStr), modifiedFrom, createdAt), nil
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}
