package deps

import (
	"context"
	"rideadmin/internal/config"
	dl "rideadmin/internal/core/domain/logging"
	drl "rideadmin/internal/core/domain/rate_limiter"
	"rideadmin/internal/core/domain/resetflow"
	credentialstore "rideadmin/internal/implementations/credential_store"
	"rideadmin/internal/implementations/identity"
	"rideadmin/internal/implementations/logging"
	ratelimiter "rideadmin/internal/implementations/rate_limiter"
	"rideadmin/internal/implementations/session"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Redis *redis.Client

	Now func() time.Time

	CredentialStores   resetflow.StoreProvider
	ResetGateway       resetflow.Gateway
	SessionIDGenerator resetflow.SessionIDGenerator

	RateLimiter drl.RateLimiter
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.CredentialStores = credentialstore.NewRedis(deps.Redis, deps.Logger, deps.Config.ResetSessionTTL)
	deps.ResetGateway = identity.New(deps.Logger, deps.Config.IdentityBaseURL, deps.Config.IdentityRequestTimeout)
	deps.SessionIDGenerator = session.NewUUID()

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}
