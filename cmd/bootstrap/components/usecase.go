package components

import (
	"roombook/internal/infra/notify"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAvailabilityChecker,
		fx.Annotate(
			NewMailer,
			fx.As(new(usecase.BookingNotifier)),
		),
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		usecase.NewRoomUseCase,
		func(a usecase.AuthUseCase) usecase.TokenValidator { return a },
	),
)

func NewMailer(cfg config.Config) *notify.Mailer {
	return notify.NewMailer(cfg.Mail)
}
