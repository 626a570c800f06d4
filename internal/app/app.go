package app

import (
	"fmt"
	"net/http"
	"rideadmin/internal/app/deps"
	"rideadmin/internal/app/services"
	getresetsession "rideadmin/internal/http/handlers/auth/reset_session"
	resendresetotp "rideadmin/internal/http/handlers/auth/resend_reset_otp"
	resetpassword "rideadmin/internal/http/handlers/auth/reset_password"
	sendresetotp "rideadmin/internal/http/handlers/auth/send_reset_otp"
	verifyresetotp "rideadmin/internal/http/handlers/auth/verify_reset_otp"
	"rideadmin/internal/http/handlers/resetsession"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	passwordResetRouter := chi.NewRouter()
	passwordResetRouter.Use(resetsession.SetSessionIDToContext(deps.SessionIDGenerator, deps.Config.ResetSessionTTL))
	passwordResetRouter.Method(http.MethodPost, "/otp", sendresetotp.New(s.RequestResetOtp))
	passwordResetRouter.Method(http.MethodPost, "/otp/resend", resendresetotp.New(s.ResendResetOtp))
	passwordResetRouter.Method(http.MethodPost, "/verification", verifyresetotp.New(s.VerifyResetOtp))
	passwordResetRouter.Method(http.MethodPut, "/", resetpassword.New(s.ResetPassword))
	passwordResetRouter.Method(http.MethodGet, "/session", getresetsession.New(s.GetResetSession))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth/password_reset", passwordResetRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
