package resetflow

import (
	"context"
	c "rideadmin/internal/core/domain/common"
)

type SessionID string

// Key is one of the two credential slots a reset session may occupy.
type Key string

const (
	KeyEmail Key = "resetEmail"
	KeyToken Key = "resetToken"
)

// Store keeps the short-lived artifacts of one client's reset session.
// The storage medium is treated as infallible: implementations must swallow
// their own failures and report a failed read as an absent value.
type Store interface {
	Put(ctx context.Context, key Key, value string)
	Get(ctx context.Context, key Key) c.Optional[string]
	Clear(ctx context.Context, key Key)
}

type StoreProvider interface {
	ForSession(id SessionID) Store
}

type SessionIDGenerator interface {
	GenerateResetSessionID() SessionID
}
