package bootstrap

import (
	"salon-assist/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.AssignmentConfig { return cfg.Assignment },
	),
)
