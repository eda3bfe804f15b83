package components

import (
	"dinetime-api/internal/infra/cache"
	"dinetime-api/internal/infra/db"
	repo_impl "dinetime-api/internal/infra/repository"
	"dinetime-api/internal/infra/sms"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewRestaurantRepository,
			fx.As(new(commands.RestaurantRepository)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			db.NewPgxTxManager,
			fx.As(new(commands.TransactionManager)),
		),

		// Read side: the same pgx repositories back the query interfaces.
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(queries.BookingQueries)),
		),
		fx.Annotate(
			repo_impl.NewRestaurantRepository,
			fx.As(new(queries.RestaurantQueries)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(queries.UserQueries)),
		),

		// Redis-backed guest verification state
		fx.Annotate(
			cache.NewVerificationStore,
			fx.As(new(commands.VerificationCache)),
		),
		fx.Annotate(
			cache.NewChallengeCache,
			fx.As(new(commands.ChallengeStore)),
		),

		NewCodeSender,
	),
)

// NewCodeSender picks Twilio when credentials are configured, otherwise the
// logging sender used in development.
func NewCodeSender(cfg config.SMSConfig) commands.CodeSender {
	if cfg.AccountSID != "" && cfg.AuthToken != "" {
		return sms.NewTwilioSender(cfg)
	}
	return sms.NewDevSender()
}
