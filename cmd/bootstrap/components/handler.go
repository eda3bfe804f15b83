package components

import (
	"dinetime-api/internal/handler"
	"dinetime-api/internal/handler/api"
	"dinetime-api/internal/handler/middleware"
	"dinetime-api/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRestaurantHandler,
		api.NewBookingHandler,
		api.NewGuestHandler,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
		),
		middleware.NewAuthMiddleware,
		middleware.NewGuestSessionMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
