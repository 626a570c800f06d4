package verifyresetotp

import (
	"context"
	"fmt"
	c "rideadmin/internal/core/domain/common"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
)

type Input struct {
	SessionID resetflow.SessionID
	Code      resetflow.OtpCode
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("verify-reset-otp::%s", i.SessionID)
}

type Result struct{}

type service struct {
	log     logging.Logger
	stores  resetflow.StoreProvider
	gateway resetflow.Gateway
}

func New(
	log logging.Logger,
	stores resetflow.StoreProvider,
	gateway resetflow.Gateway,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if stores == nil {
		panic(e.NewNilArgumentError("stores"))
	}
	if gateway == nil {
		panic(e.NewNilArgumentError("gateway"))
	}
	return &service{
		log:     log,
		stores:  stores,
		gateway: gateway,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	store := s.stores.ForSession(input.SessionID)
	session := resetflow.LoadSession(ctx, input.SessionID, store)

	if session.ExpiredForVerification() {
		s.log.Info(
			ctx,
			"Reset session expired before OTP verification.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("stage", session.Stage()),
		)
		return result, resetflow.ErrSessionExpired
	}
	if !input.Code.IsValid() {
		return result, resetflow.ErrInvalidOtpCode
	}

	token, err := s.gateway.VerifyOtp(ctx, c.Email(session.Email.Value), input.Code)
	if err != nil {
		s.log.Info(
			ctx,
			"Could not verify reset OTP.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The email is consumed by a successful verification; from here on the
	// token alone carries the session.
	store.Put(ctx, resetflow.KeyToken, string(token))
	store.Clear(ctx, resetflow.KeyEmail)

	s.log.Info(
		ctx,
		"Reset OTP has been verified.",
		logging.Entry("sessionID", input.SessionID),
	)
	return result, nil
}
