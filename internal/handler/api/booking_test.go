//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"dinetime-api/internal/domain/booking"
	"dinetime-api/internal/handler/api"
	reqdto "dinetime-api/internal/handler/dto/request"
	resdto "dinetime-api/internal/handler/dto/response"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"
	"dinetime-api/tests/common/httptest"
	commandsmock "dinetime-api/tests/mock/commands"
	queriesmock "dinetime-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testUserEmail = "diner@example.com"

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	mockCache    *commandsmock.MockVerificationCache
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockCache = commandsmock.NewMockVerificationCache(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.mockCache, config.NewTestConfig().Guest)

	// Stands in for the optional-auth and session middleware stack.
	identify := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_email", testUserEmail)
		}
		c.Set("guest_session", testGuestSession)
	}

	s.router.POST("/bookings", identify, s.handler.CreateBooking)
	s.router.GET("/bookings", identify, s.handler.ListBookings)
	s.router.GET("/bookings/:id", identify, s.handler.GetBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) bookingRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RestaurantID: uuid.MustParse("0d4dcb2e-65c2-45f1-9e1a-3a2b90f51c77"),
		Date:         time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		Slot:         "7:00 PM",
		Guests:       4,
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	key := uuid.MustParse("a0b4f9d2-7c21-4e6d-8a3f-92f6f3b3f001")
	reqBody := s.bookingRequest()
	bookingID := uuid.New()
	view := &queries.BookingView{
		ID:             bookingID,
		RestaurantID:   reqBody.RestaurantID,
		RestaurantName: "The Capital Grill",
		Slot:           reqBody.Slot,
		Guests:         4,
	}

	s.Run("success: 201 for a new authenticated booking", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), reqBody, booking.Authenticated{Email: testUserEmail}, testGuestSession, key).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: false}, nil).Times(1)

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           reqBody,
			AuthToken:      "bearer-token",
			IdempotencyKey: key.String(),
		})

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("success: 200 when the idempotency key replays", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), reqBody, booking.Authenticated{Email: testUserEmail}, testGuestSession, key).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           reqBody,
			AuthToken:      "bearer-token",
			IdempotencyKey: key.String(),
		})

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	})

	s.Run("success: anonymous caller books as a guest", func() {
		name := "Asha Rao"
		mobile := "9876543210"
		guestReq := reqBody
		guestReq.GuestName = &name
		guestReq.MobileNumber = &mobile

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), testGuestSession, key).
			DoAndReturn(func(_ any, _ reqdto.CreateBookingRequest, identity booking.Identity, _ string, _ uuid.UUID) (*commands.CreateBookingResult, error) {
				g, ok := identity.(booking.Guest)
				s.Require().True(ok)
				s.Equal("Asha Rao", g.FullName)
				s.Equal("+919876543210", g.Phone)
				return &commands.CreateBookingResult{Booking: view}, nil
			}).Times(1)

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           guestReq,
			IdempotencyKey: key.String(),
		})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 without an Idempotency-Key header", func() {
		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:    http.MethodPost,
			Path:      url,
			Body:      reqBody,
			AuthToken: "bearer-token",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header required")
	})

	s.Run("error: 400 on a malformed idempotency key", func() {
		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           reqBody,
			AuthToken:      "bearer-token",
			IdempotencyKey: "not-a-uuid",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key format")
	})

	s.Run("error: 400 when a guest omits the mobile number", func() {
		name := "Asha Rao"
		guestReq := reqBody
		guestReq.GuestName = &name

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           guestReq,
			IdempotencyKey: key.String(),
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "valid mobile number required")
	})

	s.Run("error: 400 on missing required fields", func() {
		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:         http.MethodPost,
			Path:           url,
			Body:           map[string]any{"slot": "7:00 PM"},
			AuthToken:      "bearer-token",
			IdempotencyKey: key.String(),
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "verification required",
				commandsError:  commands.ErrVerificationRequired,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Phone verification required",
			},
			{
				name:           "restaurant not found",
				commandsError:  commands.ErrRestaurantNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Restaurant not found",
			},
			{
				name:           "unknown slot",
				commandsError:  commands.ErrUnknownSlot,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Slot is not offered",
			},
			{
				name:           "no slot selected",
				commandsError:  commands.ErrNoSlotSelected,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "No slot selected",
			},
			{
				name:           "duplicate booking",
				commandsError:  commands.ErrDuplicateBooking,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Duplicate booking request",
			},
			{
				name:           "database failure",
				commandsError:  commands.ErrDatabaseOperationFailed,
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					CreateBooking(gomock.Any(), reqBody, booking.Authenticated{Email: testUserEmail}, testGuestSession, key).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.Perform(s.T(), s.router, httptest.Request{
					Method:         http.MethodPost,
					Path:           url,
					Body:           reqBody,
					AuthToken:      "bearer-token",
					IdempotencyKey: key.String(),
				})
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()
	view := &queries.BookingView{ID: bookingID, RestaurantName: "The Capital Grill"}

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("error: 400 on a malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 for an unknown booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	url := "/bookings"
	items := []*queries.BookingListItem{
		{ID: uuid.New(), RestaurantName: "The Capital Grill", Slot: "7:00 PM", Guests: 4},
		{ID: uuid.New(), RestaurantName: "Bangalore Brew Works", Slot: "8:00 PM", Guests: 2},
	}

	s.Run("success: authenticated history by account email", func() {
		s.mockQueries.EXPECT().ListByEmail(gomock.Any(), testUserEmail).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: guest history for a phone verified in this session", func() {
		s.mockCache.EXPECT().IsVerified(gomock.Any(), testGuestSession, "+919876543210").Return(true).Times(1)
		s.mockQueries.EXPECT().ListByPhone(gomock.Any(), "+919876543210").Return(items[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?phone=9876543210", nil, "")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 403 when the phone was not verified in this session", func() {
		s.mockCache.EXPECT().IsVerified(gomock.Any(), testGuestSession, "+919876543210").Return(false).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?phone=9876543210", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Phone verification required")
	})

	s.Run("error: 400 on an unparseable phone", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?phone=123", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid phone number")
	})
}
