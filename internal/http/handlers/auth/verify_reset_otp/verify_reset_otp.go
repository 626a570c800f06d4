package verifyresetotp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	ratelimiter "rideadmin/internal/core/domain/rate_limiter"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
	service "rideadmin/internal/core/services/verify_reset_otp"
	"rideadmin/internal/http/handlers/resetsession"
	"rideadmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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

type Input struct {
	OtpCode string `json:"otpCode"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.OtpCode,
			validation.Required,
			validation.Length(resetflow.CodeLength, resetflow.CodeLength),
			is.Digit,
		),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	sessionID, ok := resetsession.FromContext(r.Context())
	if !ok {
		response.RenderInternalError(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{SessionID: sessionID, Code: resetflow.OtpCode(input.OtpCode)},
	)
	if err != nil {
		var gatewayErr *resetflow.Error
		switch {
		case errors.Is(err, resetflow.ErrSessionExpired):
			response.RenderError(rw, OTP_EXPIRED_MESSAGE, http.StatusGone)
		case errors.Is(err, resetflow.ErrInvalidOtpCode):
			response.RenderError(rw, "Please enter the 6-digit OTP code.", http.StatusBadRequest)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.As(err, &gatewayErr):
			response.RenderError(rw, gatewayErr.Message, http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
