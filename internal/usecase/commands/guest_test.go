//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"dinetime-api/internal/domain/guest"
	reqdto "dinetime-api/internal/handler/dto/request"
	"dinetime-api/internal/pkg/clock"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/usecase/commands"
	commandsmock "dinetime-api/tests/mock/commands"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testSessionID  = "5dbb9b9e-3f3a-4f5a-9a30-1df5a1f51b11"
	testRawPhone   = "9876543210"
	testE164Phone  = "+919876543210"
	otherE164Phone = "+919812345678"
)

var testStart = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

type GuestCommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	challenges *commandsmock.MockChallengeStore
	cache      *commandsmock.MockVerificationCache
	sender     *commandsmock.MockCodeSender
	clock      *clock.MockClock
	cfg        config.GuestConfig
}

func (s *GuestCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.challenges = commandsmock.NewMockChallengeStore(s.ctrl)
	s.cache = commandsmock.NewMockVerificationCache(s.ctrl)
	s.sender = commandsmock.NewMockCodeSender(s.ctrl)
	s.clock = clock.NewMockClock(testStart)
	s.cfg = config.NewTestConfig().Guest
}

func (s *GuestCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGuestCommandsSuite(t *testing.T) {
	suite.Run(t, new(GuestCommandsTestSuite))
}

func (s *GuestCommandsTestSuite) newCommands() commands.GuestCommands {
	return commands.NewGuestCommands(s.challenges, s.cache, s.sender, s.cfg, s.clock)
}

func (s *GuestCommandsTestSuite) policy() guest.Policy {
	return guest.Policy{
		CodeTTL:        s.cfg.CodeTTL,
		ResendCooldown: s.cfg.ResendCooldown,
		MaxAttempts:    s.cfg.MaxAttempts,
	}
}

func (s *GuestCommandsTestSuite) liveChallenge(issuedAt time.Time) *guest.Challenge {
	ch, err := guest.NewChallenge(testE164Phone, s.policy(), issuedAt)
	s.Require().NoError(err)
	return ch
}

func (s *GuestCommandsTestSuite) TestRequestCode() {
	ctx := context.Background()
	req := reqdto.RequestCodeRequest{FullName: "Asha Rao", MobileNumber: testRawPhone}

	s.Run("rejects an unparseable phone", func() {
		g := s.newCommands()
		_, err := g.RequestCode(ctx, testSessionID, reqdto.RequestCodeRequest{FullName: "Asha Rao", MobileNumber: "123"})
		s.ErrorIs(err, commands.ErrInvalidPhone)
	})

	s.Run("short-circuits when the phone is still verified", func() {
		s.cache.EXPECT().IsVerified(gomock.Any(), testSessionID, testE164Phone).Return(true)

		g := s.newCommands()
		info, err := g.RequestCode(ctx, testSessionID, req)
		s.NoError(err)
		s.True(info.AlreadyVerified)
		s.Equal(testE164Phone, info.Phone)
		s.Empty(info.DisclosedCode)
	})

	s.Run("issues and stores a fresh challenge", func() {
		s.cache.EXPECT().IsVerified(gomock.Any(), testSessionID, testE164Phone).Return(false)
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(nil, nil)

		var stored *guest.Challenge
		s.challenges.EXPECT().Put(gomock.Any(), testSessionID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ch *guest.Challenge) error {
				stored = ch
				return nil
			})

		g := s.newCommands()
		info, err := g.RequestCode(ctx, testSessionID, req)
		s.NoError(err)
		s.False(info.AlreadyVerified)
		s.Equal(testE164Phone, info.Phone)
		s.Equal(testStart.Add(s.cfg.ResendCooldown), info.ResendAvailableAt)

		s.Require().NotNil(stored)
		s.Equal(guest.StateAwaitingCode, stored.State)
		s.Len(stored.Code, 6)
		// disclosure mode surfaces the code instead of sending an SMS
		s.Equal(stored.Code, info.DisclosedCode)
	})

	s.Run("re-request during the cooldown is refused", func() {
		existing := s.liveChallenge(testStart.Add(-30 * time.Second))

		s.cache.EXPECT().IsVerified(gomock.Any(), testSessionID, testE164Phone).Return(false)
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(existing, nil)

		g := s.newCommands()
		_, err := g.RequestCode(ctx, testSessionID, req)
		s.ErrorIs(err, guest.ErrCooldownActive)
	})

	s.Run("re-request after the cooldown replaces the challenge", func() {
		existing := s.liveChallenge(testStart.Add(-61 * time.Second))

		s.cache.EXPECT().IsVerified(gomock.Any(), testSessionID, testE164Phone).Return(false)
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(existing, nil)
		s.challenges.EXPECT().Put(gomock.Any(), testSessionID, gomock.Any()).Return(nil)

		g := s.newCommands()
		info, err := g.RequestCode(ctx, testSessionID, req)
		s.NoError(err)
		s.NotEqual(existing.Code, info.DisclosedCode)
	})

	s.Run("delivers via the sender when disclosure is off", func() {
		s.cfg.DiscloseCode = false
		defer func() { s.cfg.DiscloseCode = true }()

		s.cache.EXPECT().IsVerified(gomock.Any(), testSessionID, testE164Phone).Return(false)
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(nil, nil)
		s.sender.EXPECT().Send(gomock.Any(), testE164Phone, gomock.Any()).Return(nil)
		s.challenges.EXPECT().Put(gomock.Any(), testSessionID, gomock.Any()).Return(nil)

		g := s.newCommands()
		info, err := g.RequestCode(ctx, testSessionID, req)
		s.NoError(err)
		s.Empty(info.DisclosedCode)
	})
}

func (s *GuestCommandsTestSuite) TestVerifyCode() {
	ctx := context.Background()

	s.Run("no active challenge", func() {
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(nil, nil)

		g := s.newCommands()
		err := g.VerifyCode(ctx, testSessionID, "123456")
		s.ErrorIs(err, commands.ErrNoActiveChallenge)
	})

	s.Run("correct code saves the verification and deletes the challenge", func() {
		ch := s.liveChallenge(testStart)

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)
		s.cache.EXPECT().Save(gomock.Any(), testSessionID, testE164Phone).Return(nil)
		s.challenges.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

		g := s.newCommands()
		s.NoError(g.VerifyCode(ctx, testSessionID, ch.Code))
	})

	s.Run("wrong code persists the burned attempt", func() {
		ch := s.liveChallenge(testStart)
		wrong := "000000"
		if ch.Code == wrong {
			wrong = "000001"
		}

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)
		s.challenges.EXPECT().Put(gomock.Any(), testSessionID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, stored *guest.Challenge) error {
				s.Equal(1, stored.Attempts)
				return nil
			})

		g := s.newCommands()
		err := g.VerifyCode(ctx, testSessionID, wrong)
		s.ErrorIs(err, guest.ErrCodeMismatch)
	})

	s.Run("attempt cap locks the challenge out", func() {
		ch := s.liveChallenge(testStart)
		ch.Attempts = s.cfg.MaxAttempts - 1
		wrong := "000000"
		if ch.Code == wrong {
			wrong = "000001"
		}

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)
		s.challenges.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

		g := s.newCommands()
		err := g.VerifyCode(ctx, testSessionID, wrong)
		s.ErrorIs(err, guest.ErrTooManyAttempts)
	})

	s.Run("expired code is consumed", func() {
		ch := s.liveChallenge(testStart)
		s.clock.Set(testStart.Add(s.cfg.CodeTTL + time.Second))
		defer s.clock.Set(testStart)

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)
		s.challenges.EXPECT().Delete(gomock.Any(), testSessionID).Return(nil)

		g := s.newCommands()
		err := g.VerifyCode(ctx, testSessionID, ch.Code)
		s.ErrorIs(err, guest.ErrChallengeExpired)
	})
}

func (s *GuestCommandsTestSuite) TestResendCode() {
	ctx := context.Background()

	s.Run("no active challenge", func() {
		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(nil, nil)

		g := s.newCommands()
		_, err := g.ResendCode(ctx, testSessionID)
		s.ErrorIs(err, commands.ErrNoActiveChallenge)
	})

	s.Run("cooldown still running", func() {
		ch := s.liveChallenge(testStart)
		s.clock.Set(testStart.Add(59 * time.Second))
		defer s.clock.Set(testStart)

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)

		g := s.newCommands()
		_, err := g.ResendCode(ctx, testSessionID)
		s.ErrorIs(err, guest.ErrCooldownActive)
	})

	s.Run("resend after the cooldown issues a new code", func() {
		ch := s.liveChallenge(testStart)
		oldCode := ch.Code
		s.clock.Set(testStart.Add(60 * time.Second))
		defer s.clock.Set(testStart)

		s.challenges.EXPECT().Get(gomock.Any(), testSessionID).Return(ch, nil)
		s.challenges.EXPECT().Put(gomock.Any(), testSessionID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, stored *guest.Challenge) error {
				s.NotEqual(oldCode, stored.Code)
				s.Equal(0, stored.Attempts)
				return nil
			})

		g := s.newCommands()
		info, err := g.ResendCode(ctx, testSessionID)
		s.NoError(err)
		s.Equal(testStart.Add(2*s.cfg.ResendCooldown), info.ResendAvailableAt)
	})
}
