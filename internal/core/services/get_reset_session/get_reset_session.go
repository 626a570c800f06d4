package getresetsession

import (
	"context"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
)

type Input struct {
	SessionID resetflow.SessionID
}

type Result struct {
	Session resetflow.Session
}

type service struct {
	log    logging.Logger
	stores resetflow.StoreProvider
}

func New(
	log logging.Logger,
	stores resetflow.StoreProvider,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if stores == nil {
		panic(e.NewNilArgumentError("stores"))
	}
	return &service{log: log, stores: stores}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	store := s.stores.ForSession(input.SessionID)
	result.Session = resetflow.LoadSession(ctx, input.SessionID, store)
	return result, nil
}
