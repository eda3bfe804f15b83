package sms

import (
	"context"
	"log/slog"
)

// DevSender logs instead of sending. Used when no Twilio credentials are
// configured, typically alongside GUEST_OTP_DISCLOSE.
type DevSender struct{}

func NewDevSender() *DevSender {
	return &DevSender{}
}

func (s *DevSender) Send(_ context.Context, phone, code string) error {
	slog.Info("dev SMS sender", "to", phone, "code", code)
	return nil
}
