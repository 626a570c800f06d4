package resetsession

import (
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/services"
	service "rideadmin/internal/core/services/get_reset_session"
	sessionctx "rideadmin/internal/http/handlers/resetsession"
	"rideadmin/internal/http/handlers/response"
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

type result struct {
	Stage         string `json:"stage"`
	EmailOnRecord bool   `json:"emailOnRecord"`
	Expired       bool   `json:"expired"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionctx.FromContext(r.Context())
	if !ok {
		response.RenderInternalError(rw)
		return
	}

	serviceResult, err := h.service.Run(r.Context(), service.Input{SessionID: sessionID})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	session := serviceResult.Session
	response.Render(rw, result{
		Stage:         session.Stage().String(),
		EmailOnRecord: session.Email.IsPresent,
		Expired:       session.ExpiredForVerification(),
	}, http.StatusOK)
}
