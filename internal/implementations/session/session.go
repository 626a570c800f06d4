package session

import (
	"rideadmin/internal/core/domain/resetflow"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateResetSessionID() resetflow.SessionID {
	return resetflow.SessionID(uuid.New().String())
}
