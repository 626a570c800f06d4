package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	dl "rideadmin/internal/core/domain/logging"
	"rideadmin/internal/identitystub"
	"rideadmin/internal/implementations/logging"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
)

type stubConfig struct {
	IsTestMode bool          `env:"TEST_MODE" envDefault:"false"`
	Port       int           `env:"PORT" envDefault:"9091"`
	OtpTTL     time.Duration `env:"OTP_TTL" envDefault:"10m"`
}

func main() {
	cfg := stubConfig{}
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	logger := logging.NewZapLogger()
	defer logger.Sync()

	now := func() time.Time { return time.Now().UTC() }
	stub := identitystub.New(logger, now, cfg.OtpTTL, cfg.IsTestMode)

	server := &http.Server{
		Handler: stub.Router(),
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
	}

	go func() {
		logger.Info(
			context.Background(),
			"Identity stub has started.",
			dl.Entry("address", server.Addr),
			dl.Entry("isTestMode", cfg.IsTestMode),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}
	logger.Info(context.Background(), "Identity stub has shutdowned.")
}
