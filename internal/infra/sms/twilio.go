package sms

import (
	"context"
	"fmt"

	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/pkg/errs"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers OTP codes over SMS.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.SMSConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, from: cfg.FromNumber}
}

func (s *TwilioSender) Send(ctx context.Context, phone, code string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Your DineTime verification code is %s. It expires in 10 minutes.", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return errs.Wrap(err, "twilio send failed")
	}
	return nil
}
