package resendresetotp

import (
	"errors"
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	ratelimiter "rideadmin/internal/core/domain/rate_limiter"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
	service "rideadmin/internal/core/services/resend_reset_otp"
	"rideadmin/internal/http/handlers/resetsession"
	"rideadmin/internal/http/handlers/response"
)

const OTP_EXPIRED_MESSAGE = "OTP Expired"

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type result struct {
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	sessionID, ok := resetsession.FromContext(r.Context())
	if !ok {
		response.RenderInternalError(rw)
		return
	}

	serviceResult, err := h.service.Run(r.Context(), service.Input{SessionID: sessionID})
	if err != nil {
		var gatewayErr *resetflow.Error
		switch {
		case errors.Is(err, resetflow.ErrSessionExpired):
			response.RenderError(rw, OTP_EXPIRED_MESSAGE, http.StatusGone)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.As(err, &gatewayErr):
			response.RenderError(rw, gatewayErr.Message, http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	message := serviceResult.Message
	if message == "" {
		message = "A new OTP has been sent."
	}
	response.Render(rw, result{Message: message}, http.StatusOK)
}
