package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dinetime-api/internal/handler/api"
	"dinetime-api/internal/handler/middleware"
	"dinetime-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	restaurantHandler *api.RestaurantHandler,
	bookingHandler *api.BookingHandler,
	guestHandler *api.GuestHandler,
	authMiddleware *middleware.AuthMiddleware,
	guestSession *middleware.GuestSessionMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, restaurantHandler, bookingHandler, guestHandler, authMiddleware, guestSession)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	restaurantHandler *api.RestaurantHandler,
	bookingHandler *api.BookingHandler,
	guestHandler *api.GuestHandler,
	authMiddleware *middleware.AuthMiddleware,
	guestSession *middleware.GuestSessionMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/signup", Handler: authHandler.Signup},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		restaurants := apiGroup.Group("/restaurants")
		{
			addRoutes(restaurants, []route{
				{Method: http.MethodGet, Path: "", Handler: restaurantHandler.ListRestaurants},
				{Method: http.MethodGet, Path: "/:id", Handler: restaurantHandler.GetRestaurant},
			})
		}

		// OTP endpoints are session-keyed, so the guest session cookie is
		// issued before any of them run.
		guestGroup := apiGroup.Group("/guest")
		guestGroup.Use(guestSession.EnsureSession())
		{
			addRoutes(guestGroup, []route{
				{Method: http.MethodPost, Path: "/verification", Handler: guestHandler.RequestCode},
				{Method: http.MethodPost, Path: "/verification/verify", Handler: guestHandler.VerifyCode},
				{Method: http.MethodPost, Path: "/verification/resend", Handler: guestHandler.ResendCode},
			})
		}

		// Booking works for both audiences: OptionalAuth resolves accounts,
		// the guest session covers everyone else.
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.OptionalAuth())
		bookings.Use(guestSession.EnsureSession())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
