package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"roombook/internal/infra/memstore"
	"roombook/internal/infra/pgstore"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase"

	"go.uber.org/fx"
)

// Stores bundles the selected persistence backends. Rooms and bookings
// follow STORE_DRIVER; users always live in the seeded in-memory store
// since accounts are demo fixtures, not managed data.
type Stores struct {
	Bookings usecase.BookingRepository
	Rooms    usecase.RoomRepository
	Users    usecase.UserRepository
}

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
		func(s *Stores) usecase.BookingRepository { return s.Bookings },
		func(s *Stores) usecase.RoomRepository { return s.Rooms },
		func(s *Stores) usecase.UserRepository { return s.Users },
	),
)

func NewStores(lc fx.Lifecycle, cfg config.Config) (*Stores, error) {
	users := memstore.NewUserStore()
	if err := memstore.SeedUsers(users); err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case "memory":
		return newMemoryStores(cfg, users)
	case "postgres":
		return newPostgresStores(lc, cfg, users)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func newMemoryStores(cfg config.Config, users *memstore.UserStore) (*Stores, error) {
	rooms := memstore.NewRoomStore()
	bookings := memstore.NewBookingStore()

	if err := memstore.SeedRooms(rooms); err != nil {
		return nil, err
	}
	if cfg.Store.Seed {
		if err := memstore.SeedBookings(bookings); err != nil {
			return nil, err
		}
	}

	slog.Info("using in-memory store", "seed", cfg.Store.Seed)

	return &Stores{
		Bookings: bookings,
		Rooms:    rooms,
		Users:    users,
	}, nil
}

func newPostgresStores(lc fx.Lifecycle, cfg config.Config, users *memstore.UserStore) (*Stores, error) {
	pool, cleanup, err := pgstore.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	slog.Info("using postgres store", "host", cfg.DB.Host, "db", cfg.DB.DBName)

	return &Stores{
		Bookings: pgstore.NewBookingStore(pool),
		Rooms:    pgstore.NewRoomStore(pool),
		Users:    users,
	}, nil
}
