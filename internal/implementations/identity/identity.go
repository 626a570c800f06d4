package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	c "rideadmin/internal/core/domain/common"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"time"
)

const (
	SendResetOtpPath   = "/admin/send-reset-otp"
	VerifyResetOtpPath = "/admin/verify-reset-otp"
	ResetPasswordPath  = "/admin/reset-password"
)

// HTTPGateway talks to the remote identity service. Every call is a single
// non-retrying POST; the transport timeout bounds it and there is no
// cancellation beyond the request context.
type HTTPGateway struct {
	log        logging.Logger
	httpClient http.Client
	baseURL    url.URL
}

func New(log logging.Logger, baseURL url.URL, timeout time.Duration) *HTTPGateway {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &HTTPGateway{
		log:        log,
		baseURL:    baseURL,
		httpClient: http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenData struct {
	Token       string `json:"token"`
	ResetToken  string `json:"resetToken"`
	AccessToken string `json:"accessToken"`
}

type sendResetOtpBody struct {
	Email string `json:"email"`
}

type verifyResetOtpBody struct {
	Email   string `json:"email"`
	OtpCode string `json:"otpCode"`
}

type resetPasswordBody struct {
	NewPassword string `json:"newPassword"`
}

func (g *HTTPGateway) RequestOtp(ctx context.Context, email c.Email) (ack resetflow.Ack, err error) {
	response, err := g.post(ctx, SendResetOtpPath, sendResetOtpBody{Email: string(email)}, "")
	if err != nil {
		return ack, err
	}
	return resetflow.Ack{Message: response.Message}, nil
}

func (g *HTTPGateway) VerifyOtp(
	ctx context.Context,
	email c.Email,
	code resetflow.OtpCode,
) (token resetflow.Token, err error) {
	response, err := g.post(
		ctx,
		VerifyResetOtpPath,
		verifyResetOtpBody{Email: string(email), OtpCode: string(code)},
		"",
	)
	if err != nil {
		return token, err
	}

	var data tokenData
	if len(response.Data) > 0 {
		// A malformed data payload reads the same as an empty one: no token.
		json.Unmarshal(response.Data, &data)
	}
	switch {
	case data.Token != "":
		return resetflow.Token(data.Token), nil
	case data.ResetToken != "":
		return resetflow.Token(data.ResetToken), nil
	case data.AccessToken != "":
		return resetflow.Token(data.AccessToken), nil
	}

	g.log.Warning(ctx, "Identity service returned no reset token in verify response.")
	return token, resetflow.NewMissingTokenError()
}

func (g *HTTPGateway) ResetPassword(
	ctx context.Context,
	newPassword resetflow.RawPassword,
	token resetflow.Token,
) (ack resetflow.Ack, err error) {
	response, err := g.post(
		ctx,
		ResetPasswordPath,
		resetPasswordBody{NewPassword: string(newPassword)},
		token,
	)
	if err != nil {
		return ack, err
	}
	return resetflow.Ack{Message: response.Message}, nil
}

func (g *HTTPGateway) post(
	ctx context.Context,
	path string,
	body interface{},
	bearer resetflow.Token,
) (*envelope, error) {
	var requestBody bytes.Buffer
	if err := json.NewEncoder(&requestBody).Encode(body); err != nil {
		logging.Error(ctx, g.log, err, logging.Entry("path", path))
		return nil, resetflow.NewTransportError()
	}

	endpoint := g.baseURL.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &requestBody)
	if err != nil {
		logging.Error(ctx, g.log, err, logging.Entry("path", path))
		return nil, resetflow.NewTransportError()
	}
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+string(bearer))
	}

	response, err := g.httpClient.Do(request)
	if err != nil {
		g.log.Warning(
			ctx,
			"Identity service request failed.",
			logging.Entry("path", path),
			logging.Entry("err", err),
		)
		return nil, resetflow.NewTransportError()
	}
	defer response.Body.Close()

	result := envelope{}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		if response.StatusCode >= http.StatusBadRequest {
			// The remote rejected the request but the body carried no
			// readable message.
			return nil, resetflow.NewRemoteError("")
		}
		g.log.Warning(
			ctx,
			"Could not decode identity service response.",
			logging.Entry("path", path),
			logging.Entry("status", response.StatusCode),
			logging.Entry("err", err),
		)
		return nil, resetflow.NewTransportError()
	}

	if response.StatusCode >= http.StatusBadRequest || !result.Success {
		return nil, resetflow.NewRemoteError(result.Message)
	}
	return &result, nil
}
