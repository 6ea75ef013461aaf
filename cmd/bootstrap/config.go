package bootstrap

import (
	"roombook/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		NewConfig,
	),
)

func NewConfig() (config.Config, error) {
	// Missing .env is fine; the environment takes precedence anyway.
	_ = godotenv.Load()
	return config.LoadConfig()
}
