package pgstore

import (
	"context"
	"errors"
	"strconv"

	"roombook/internal/domain/room"
	"roombook/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomStore reads the room catalog from Postgres. Filtering happens in
// SQL where it is cheap; the amenities-subset check uses the array
// containment operator.
type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

const roomColumns = `id, name, capacity, location, amenities, status, photo_url`

func (s *RoomStore) FindByID(ctx context.Context, id string) (*room.Room, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)

	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by id", err)
	}
	return rm, nil
}

func (s *RoomStore) FindAll(ctx context.Context, filter room.Filter) ([]*room.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	var args []any

	if filter.CapacityGTE > 0 {
		args = append(args, filter.CapacityGTE)
		query += ` AND capacity >= $` + strconv.Itoa(len(args))
	}
	if len(filter.Amenities) > 0 {
		args = append(args, filter.Amenities)
		query += ` AND amenities @> $` + strconv.Itoa(len(args))
	}
	if filter.LocationContains != "" {
		args = append(args, "%"+filter.LocationContains+"%")
		query += ` AND location ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var result []*room.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return result, nil
}

func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		id        string
		name      string
		capacity  int
		location  string
		amenities []string
		status    string
		photoURL  string
	)

	if err := row.Scan(&id, &name, &capacity, &location, &amenities, &status, &photoURL); err != nil {
		return nil, err
	}

	return room.NewRoom(id, name, capacity, location, amenities, room.Status(status), photoURL)
}
