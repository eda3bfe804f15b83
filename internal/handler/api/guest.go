package api

import (
	"errors"
	"net/http"

	"dinetime-api/internal/domain/guest"
	reqdto "dinetime-api/internal/handler/dto/request"
	resdto "dinetime-api/internal/handler/dto/response"
	"dinetime-api/internal/handler/middleware"
	"dinetime-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type GuestHandler struct {
	guestCommands commands.GuestCommands
}

func NewGuestHandler(guestCommands commands.GuestCommands) *GuestHandler {
	return &GuestHandler{
		guestCommands: guestCommands,
	}
}

// @Summary Request verification code
// @Description Start the OTP round for a guest phone. A phone verified within the last 24h short-circuits.
// @Tags guest
// @Accept json
// @Produce json
// @Param request body reqdto.RequestCodeRequest true "Phone to verify"
// @Success 200 {object} resdto.ChallengeResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /guest/verification [post]
func (h *GuestHandler) RequestCode(c *gin.Context) {
	sessionID, ok := middleware.GetGuestSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	info, err := h.guestCommands.RequestCode(c.Request.Context(), sessionID, req)
	if err != nil {
		h.writeGuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromChallengeInfo(info))
}

// @Summary Verify code
// @Description Settle the OTP round. Success caches the verification for 24h.
// @Tags guest
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyCodeRequest true "Submitted code"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /guest/verification/verify [post]
func (h *GuestHandler) VerifyCode(c *gin.Context) {
	sessionID, ok := middleware.GetGuestSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.guestCommands.VerifyCode(c.Request.Context(), sessionID, req.Code); err != nil {
		h.writeGuestError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Resend verification code
// @Description Reissue the code for the active challenge, subject to the 60s cooldown.
// @Tags guest
// @Produce json
// @Success 200 {object} resdto.ChallengeResponse
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /guest/verification/resend [post]
func (h *GuestHandler) ResendCode(c *gin.Context) {
	sessionID, ok := middleware.GetGuestSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	info, err := h.guestCommands.ResendCode(c.Request.Context(), sessionID)
	if err != nil {
		h.writeGuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromChallengeInfo(info))
}

func (h *GuestHandler) writeGuestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid phone number",
		})
	case errors.Is(err, commands.ErrNoActiveChallenge):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active verification challenge",
		})
	case errors.Is(err, guest.ErrCooldownActive):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Resend cooldown active",
		})
	case errors.Is(err, guest.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many attempts, request a new code",
		})
	case errors.Is(err, guest.ErrChallengeExpired):
		c.JSON(http.StatusGone, gin.H{
			"error": "Verification code expired",
		})
	case errors.Is(err, guest.ErrCodeMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Incorrect verification code",
		})
	case errors.Is(err, commands.ErrCodeDelivery):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to deliver verification code",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
