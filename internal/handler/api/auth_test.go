//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"dinetime-api/internal/handler/api"
	reqdto "dinetime-api/internal/handler/dto/request"
	resdto "dinetime-api/internal/handler/dto/response"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/pkg/cookie"
	"dinetime-api/internal/pkg/jwt"
	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"
	"dinetime-api/tests/common/httptest"
	commandsmock "dinetime-api/tests/mock/commands"
	queriesmock "dinetime-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler

	userID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 168*time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.CookieConfig{SameSite: "Lax"})

	s.userID = uuid.New()

	s.router.POST("/auth/signup", s.handler.Signup)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Mock middleware behavior for /auth/me
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) authResult() *commands.AuthResult {
	return &commands.AuthResult{
		UserID: s.userID,
		Email:  "asha@example.com",
		TokenPair: &commands.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		},
	}
}

func (s *AuthHandlerTestSuite) TestSignup() {
	url := "/auth/signup"
	reqBody := reqdto.SignupRequest{
		UserName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret123",
	}

	s.Run("success: 201 with both token cookies set", func() {
		s.mockCommands.EXPECT().Signup(gomock.Any(), reqBody).
			Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("asha@example.com", response.Email)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("access-token", access.Value)
		s.True(access.HttpOnly)
		s.NotNil(httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName))
	})

	s.Run("error: 409 on a registered email", func() {
		s.mockCommands.EXPECT().Signup(gomock.Any(), reqBody).
			Return(nil, commands.ErrEmailAlreadyExists).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})

	s.Run("error: 400 on invalid signup data", func() {
		s.mockCommands.EXPECT().Signup(gomock.Any(), reqBody).
			Return(nil, commands.ErrAuthenticationFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request data")
	})

	s.Run("error: 400 on a malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"email": "not-an-email"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := reqdto.LoginRequest{Email: "asha@example.com", Password: "secret123"}

	s.Run("success: returns 200 OK for valid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(s.authResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.userID, response.UserID)
	})

	s.Run("error: 401 on invalid credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 500 on unexpected failures", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"

	s.Run("success: rotates the pair from the cookie", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), "old-refresh").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:  http.MethodPost,
			Path:    url,
			Cookies: []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "old-refresh"}},
		})

		s.Equal(http.StatusNoContent, rec.Code)
		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("new-access", access.Value)
	})

	s.Run("error: 401 without the refresh cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("error: 401 on a rejected token", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), "stale").
			Return(nil, commands.ErrTokenValidation).Times(1)

		rec := httptest.Perform(s.T(), s.router, httptest.Request{
			Method:  http.MethodPost,
			Path:    url,
			Cookies: []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "stale"}},
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: 204 and clears the token cookies", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Less(access.MaxAge, 0)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"
	view := &queries.UserView{ID: uuid.New(), UserName: "Asha Rao", Email: "asha@example.com"}

	s.Run("success: returns current user info", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("asha@example.com", response.Email)
	})

	s.Run("error: 401 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("error: 404 when the account is gone", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
