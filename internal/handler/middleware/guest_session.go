package middleware

import (
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxGuestSessionKey = "guest_session"

// GuestSessionMiddleware pins an anonymous browser to a stable session ID.
// The ID keys the OTP challenge and the phone-verification cache, so it must
// survive across the whole booking flow. A missing or malformed cookie gets
// a fresh ID; the cookie lifetime matches the verification window so the
// cached verification cannot outlive its key.
type GuestSessionMiddleware struct {
	cookieCfg config.CookieConfig
	guestCfg  config.GuestConfig
}

func NewGuestSessionMiddleware(cookieCfg config.CookieConfig, guestCfg config.GuestConfig) *GuestSessionMiddleware {
	return &GuestSessionMiddleware{
		cookieCfg: cookieCfg,
		guestCfg:  guestCfg,
	}
}

func (m *GuestSessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cookie.GetGuestSession(c)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			cookie.SetGuestSession(c, m.cookieCfg, sessionID, m.guestCfg.VerificationTTL)
		}

		c.Set(ctxGuestSessionKey, sessionID)
		c.Next()
	}
}

func GetGuestSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(ctxGuestSessionKey)
	if !exists {
		return "", false
	}

	id, ok := sessionID.(string)
	return id, ok && id != ""
}
