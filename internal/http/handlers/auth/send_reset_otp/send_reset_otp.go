package sendresetotp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "rideadmin/internal/core/domain/common"
	e "rideadmin/internal/core/domain/errors"
	ratelimiter "rideadmin/internal/core/domain/rate_limiter"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
	service "rideadmin/internal/core/services/request_reset_otp"
	"rideadmin/internal/http/handlers/resetsession"
	"rideadmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

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
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
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

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceResult, err := h.service.Run(
		r.Context(),
		service.Input{SessionID: sessionID, Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		var gatewayErr *resetflow.Error
		switch {
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
		message = "OTP sent"
	}
	response.Render(rw, result{Message: message}, http.StatusOK)
}
