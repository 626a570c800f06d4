package resetpassword

import (
	"context"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
)

type Input struct {
	SessionID            resetflow.SessionID
	NewPassword          resetflow.RawPassword
	PasswordConfirmation resetflow.RawPassword
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
	if err := resetflow.ValidateNewPassword(input.NewPassword, input.PasswordConfirmation); err != nil {
		return result, err
	}

	store := s.stores.ForSession(input.SessionID)
	session := resetflow.LoadSession(ctx, input.SessionID, store)
	if !session.CanReset() {
		s.log.Info(
			ctx,
			"Password reset requested without a verified token.",
			logging.Entry("sessionID", input.SessionID),
		)
		return result, resetflow.ErrSessionExpired
	}

	_, err = s.gateway.ResetPassword(ctx, input.NewPassword, session.Token.Value)
	if err != nil {
		s.log.Info(
			ctx,
			"Could not reset password.",
			logging.Entry("sessionID", input.SessionID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The session is single-use: a successful reset destroys it.
	store.Clear(ctx, resetflow.KeyToken)
	store.Clear(ctx, resetflow.KeyEmail)

	s.log.Info(
		ctx,
		"Password has been reset.",
		logging.Entry("sessionID", input.SessionID),
	)
	return result, nil
}
