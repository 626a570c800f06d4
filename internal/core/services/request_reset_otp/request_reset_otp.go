package requestresetotp

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
	Email     c.Email
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("send-reset-otp::%s", i.Email)
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
	ack, err := s.gateway.RequestOtp(ctx, input.Email)
	if err != nil {
		s.log.Info(
			ctx,
			"Could not request reset OTP.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		return result, err
	}

	store := s.stores.ForSession(input.SessionID)
	store.Put(ctx, resetflow.KeyEmail, string(input.Email))
	// Starting a fresh request invalidates any token left over from an
	// earlier verification; otherwise a stale token could reset the password
	// of a different email's flow.
	store.Clear(ctx, resetflow.KeyToken)

	s.log.Info(
		ctx,
		"Reset OTP has been requested.",
		logging.Entry("sessionID", input.SessionID),
	)
	return Result{Message: ack.Message}, nil
}
