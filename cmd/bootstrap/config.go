package bootstrap

import (
	"dinetime-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-configs so components depend only on what they read.
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.GuestConfig { return cfg.Guest },
		func(cfg config.Config) config.SMSConfig { return cfg.SMS },
	),
)
