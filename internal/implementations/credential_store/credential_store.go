package credentialstore

import (
	"context"
	"errors"
	"fmt"
	c "rideadmin/internal/core/domain/common"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis keeps reset-session credentials in Redis, namespaced by session ID.
// Keys carry a TTL so abandoned sessions decay on their own. The store
// contract treats the medium as infallible: client errors are logged and a
// failed read is reported as an absent value.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, log logging.Logger, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Redis{redisClient: redisClient, log: log, ttl: ttl}
}

func (r *Redis) ForSession(id resetflow.SessionID) resetflow.Store {
	return &redisStore{provider: r, session: id}
}

type redisStore struct {
	provider *Redis
	session  resetflow.SessionID
}

func (s *redisStore) key(key resetflow.Key) string {
	return fmt.Sprintf("reset::%s::%s", s.session, key)
}

func (s *redisStore) Put(ctx context.Context, key resetflow.Key, value string) {
	err := s.provider.redisClient.Set(ctx, s.key(key), value, s.provider.ttl).Err()
	if err != nil && !errors.Is(err, context.Canceled) {
		s.provider.log.Error(
			ctx,
			"Could not write reset credential to Redis.",
			logging.Entry("key", key),
			logging.Entry("err", err),
		)
	}
}

func (s *redisStore) Get(ctx context.Context, key resetflow.Key) c.Optional[string] {
	value, err := s.provider.redisClient.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return c.NewOptional("", false)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.provider.log.Error(
				ctx,
				"Could not read reset credential from Redis.",
				logging.Entry("key", key),
				logging.Entry("err", err),
			)
		}
		return c.NewOptional("", false)
	}
	return c.NewOptional(value, true)
}

func (s *redisStore) Clear(ctx context.Context, key resetflow.Key) {
	err := s.provider.redisClient.Del(ctx, s.key(key)).Err()
	if err != nil && !errors.Is(err, context.Canceled) {
		s.provider.log.Error(
			ctx,
			"Could not clear reset credential in Redis.",
			logging.Entry("key", key),
			logging.Entry("err", err),
		)
	}
}
