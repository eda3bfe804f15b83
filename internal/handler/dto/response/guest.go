package response

import (
	"time"

	"dinetime-api/internal/usecase/commands"
)

type ChallengeResponse struct {
	Phone             string     `json:"phone"`
	AlreadyVerified   bool       `json:"already_verified"`
	ResendAvailableAt *time.Time `json:"resend_available_at,omitempty"`
	// Code appears only in development disclosure mode.
	Code string `json:"code,omitempty"`
}

func FromChallengeInfo(info *commands.ChallengeInfo) *ChallengeResponse {
	resp := &ChallengeResponse{
		Phone:           info.Phone,
		AlreadyVerified: info.AlreadyVerified,
		Code:            info.DisclosedCode,
	}
	if !info.ResendAvailableAt.IsZero() {
		t := info.ResendAvailableAt
		resp.ResendAvailableAt = &t
	}
	return resp
}
