package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
	service "rideadmin/internal/core/services/reset_password"
	"rideadmin/internal/http/handlers/resetsession"
	"rideadmin/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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
	NewPassword          string `json:"newPassword"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

// Validate bounds the inputs; the policy itself is a domain concern and is
// checked by the service with its fixed error messages.
func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.NewPassword, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.PasswordConfirmation, validation.Required, validation.Length(0, 256)),
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
		service.Input{
			SessionID:            sessionID,
			NewPassword:          resetflow.RawPassword(input.NewPassword),
			PasswordConfirmation: resetflow.RawPassword(input.PasswordConfirmation),
		},
	)
	if err != nil {
		var gatewayErr *resetflow.Error
		switch {
		case errors.Is(err, resetflow.ErrPasswordRequired):
			response.RenderError(rw, "Please fill in all fields", http.StatusBadRequest)
		case errors.Is(err, resetflow.ErrPasswordPolicyViolation):
			response.RenderError(
				rw,
				"Password must have at least 8 characters, including uppercase, lowercase, number, and special character.",
				http.StatusBadRequest,
			)
		case errors.Is(err, resetflow.ErrPasswordMismatch):
			response.RenderError(rw, "Passwords do not match", http.StatusBadRequest)
		case errors.Is(err, resetflow.ErrSessionExpired):
			response.RenderError(rw, "Reset session expired. Please verify OTP again.", http.StatusGone)
		case errors.As(err, &gatewayErr):
			response.RenderError(rw, gatewayErr.Message, http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
