package resendresetotp

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
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("resend-reset-otp::%s", i.SessionID)
}

type Result struct {
	Message string
}

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

	if !session.CanResend() {
		s.log.Info(
			ctx,
			"Resend requested without an email on record.",
			logging.Entry("sessionID", input.SessionID),
		)
		return result, resetflow.ErrSessionExpired
	}

	ack, err := s.gateway.RequestOtp(ctx, c.Email(session.Email.Value))
	if err != nil {
		s.log.Info(
			ctx,
			"Could not resend reset OTP.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// A fresh code invalidates any token obtained with the previous one.
	store.Clear(ctx, resetflow.KeyToken)

	s.log.Info(
		ctx,
		"Reset OTP has been resent.",
		logging.Entry("sessionID", input.SessionID),
	)
	return Result{Message: ack.Message}, nil
}
