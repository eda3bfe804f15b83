package api

import (
	"errors"
	"net/http"

	"dinetime-api/internal/domain/booking"
	"dinetime-api/internal/domain/guest"
	reqdto "dinetime-api/internal/handler/dto/request"
	resdto "dinetime-api/internal/handler/dto/response"
	"dinetime-api/internal/handler/middleware"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/pkg/phone"
	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands   commands.BookingCommands
	bookingQueries    queries.BookingQueries
	verificationCache commands.VerificationCache
	guestCfg          config.GuestConfig
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	verificationCache commands.VerificationCache,
	guestCfg config.GuestConfig,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands:   bookingCommands,
		bookingQueries:    bookingQueries,
		verificationCache: verificationCache,
		guestCfg:          guestCfg,
	}
}

// @Summary Create booking
// @Description Submit a finished slot selection. Guests must have verified their phone in this session first.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	identity, err := h.resolveIdentity(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	sessionID, _ := middleware.GetGuestSessionID(c)

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, identity, sessionID, idempotencyKey)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Booking history. Authenticated callers get their account history; guests pass the phone they verified in this session.
// @Tags bookings
// @Produce json
// @Param phone query string false "Verified phone (guests only)"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 403 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()

	if email, ok := middleware.GetUserEmail(c); ok {
		items, err := h.bookingQueries.ListByEmail(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, toBookingList(items))
		return
	}

	rawPhone := c.Query("phone")
	normalized, err := phone.Normalize(rawPhone, h.guestCfg.DefaultRegion)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid phone number",
		})
		return
	}

	// A guest only sees the history of a phone this session has verified.
	sessionID, ok := middleware.GetGuestSessionID(c)
	if !ok || !h.verificationCache.IsVerified(ctx, sessionID, normalized) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Phone verification required",
			"code":  "verification_required",
		})
		return
	}

	items, err := h.bookingQueries.ListByPhone(ctx, normalized)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, toBookingList(items))
}

func (h *BookingHandler) resolveIdentity(c *gin.Context, req reqdto.CreateBookingRequest) (booking.Identity, error) {
	if email, ok := middleware.GetUserEmail(c); ok {
		return booking.Authenticated{Email: email}, nil
	}

	normalized, err := phone.Normalize(req.GetMobileNumber(), h.guestCfg.DefaultRegion)
	if err != nil {
		return nil, errors.New("valid mobile number required for guest booking")
	}

	return booking.NewGuest(req.GetGuestName(), normalized)
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVerificationRequired):
		// The code field routes the client into the OTP round.
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Phone verification required",
			"code":  "verification_required",
		})
	case errors.Is(err, commands.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Restaurant not found",
		})
	case errors.Is(err, commands.ErrUnknownSlot):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Slot is not offered by this restaurant",
		})
	case errors.Is(err, commands.ErrNoSlotSelected), errors.Is(err, booking.ErrNoSlotSelected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No slot selected",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	case errors.Is(err, commands.ErrDuplicateBooking):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate booking request with different parameters",
		})
	case errors.Is(err, guest.ErrChallengeExpired):
		c.JSON(http.StatusGone, gin.H{
			"error": "Verification expired",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func toBookingList(items []*queries.BookingListItem) []*resdto.BookingListResponse {
	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	return response
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("Idempotency-Key header required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
