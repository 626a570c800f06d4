package services

import (
	"rideadmin/internal/app/deps"
	drl "rideadmin/internal/core/domain/rate_limiter"
	"rideadmin/internal/core/services"
	getresetsession "rideadmin/internal/core/services/get_reset_session"
	ratelimiting "rideadmin/internal/core/services/rate_limiting"
	requestresetotp "rideadmin/internal/core/services/request_reset_otp"
	resendresetotp "rideadmin/internal/core/services/resend_reset_otp"
	resetpassword "rideadmin/internal/core/services/reset_password"
	verifyresetotp "rideadmin/internal/core/services/verify_reset_otp"
)

type Services struct {
	RequestResetOtp services.Service[requestresetotp.Input, requestresetotp.Result]
	ResendResetOtp  services.Service[resendresetotp.Input, resendresetotp.Result]
	VerifyResetOtp  services.Service[verifyresetotp.Input, verifyresetotp.Result]
	ResetPassword   services.Service[resetpassword.Input, resetpassword.Result]
	GetResetSession services.Service[getresetsession.Input, getresetsession.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestResetOtp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestresetotp.New(
			deps.Logger,
			deps.CredentialStores,
			deps.ResetGateway,
		),
	)
	s.ResendResetOtp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		resendresetotp.New(
			deps.Logger,
			deps.CredentialStores,
			deps.ResetGateway,
		),
	)
	s.VerifyResetOtp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		verifyresetotp.New(
			deps.Logger,
			deps.CredentialStores,
			deps.ResetGateway,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.CredentialStores,
		deps.ResetGateway,
	)
	s.GetResetSession = getresetsession.New(
		deps.Logger,
		deps.CredentialStores,
	)

	return s
}
