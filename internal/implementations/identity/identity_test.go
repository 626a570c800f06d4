package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	c "rideadmin/internal/core/domain/common"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	requestresetotp "rideadmin/internal/core/services/request_reset_otp"
	resetpassword "rideadmin/internal/core/services/reset_password"
	verifyresetotp "rideadmin/internal/core/services/verify_reset_otp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	return New(logging.NewFakeLogger(), *baseURL, time.Second)
}

func renderJSON(rw http.ResponseWriter, status int, body string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write([]byte(body))
}

func TestRequestOtp(t *testing.T) {
	assert := require.New(t)
	var gotPath string
	var gotBody map[string]string

	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		renderJSON(rw, http.StatusOK, `{"success":true,"message":"OTP sent","data":null}`)
	})

	ack, err := gateway.RequestOtp(context.Background(), c.Email("admin@ride.example"))
	assert.NoError(err)
	assert.Equal("OTP sent", ack.Message)
	assert.Equal(SendResetOtpPath, gotPath)
	assert.Equal(map[string]string{"email": "admin@ride.example"}, gotBody)
}

func TestRequestOtpRemoteErrorMessage(t *testing.T) {
	assert := require.New(t)
	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		renderJSON(rw, http.StatusNotFound, `{"success":false,"message":"No admin found with this email","data":null}`)
	})

	_, err := gateway.RequestOtp(context.Background(), c.Email("admin@ride.example"))
	assert.EqualError(err, "No admin found with this email")

	var gatewayErr *resetflow.Error
	assert.ErrorAs(err, &gatewayErr)
	assert.Equal(resetflow.ErrorKindRemote, gatewayErr.Kind)
}

func TestRequestOtpRemoteErrorWithoutMessage(t *testing.T) {
	assert := require.New(t)
	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
	})

	_, err := gateway.RequestOtp(context.Background(), c.Email("admin@ride.example"))
	assert.EqualError(err, resetflow.FallbackErrorMessage)
}

func TestRequestOtpTransportError(t *testing.T) {
	assert := require.New(t)
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	server.Close()
	gateway := New(logging.NewFakeLogger(), *baseURL, time.Second)

	_, err = gateway.RequestOtp(context.Background(), c.Email("admin@ride.example"))
	assert.EqualError(err, resetflow.FallbackErrorMessage)

	var gatewayErr *resetflow.Error
	assert.ErrorAs(err, &gatewayErr)
	assert.Equal(resetflow.ErrorKindTransport, gatewayErr.Kind)
}

func TestVerifyOtpTokenFieldNames(t *testing.T) {
	cases := []struct {
		field string
	}{
		{field: "token"},
		{field: "resetToken"},
		{field: "accessToken"},
	}
	for _, testcase := range cases {
		t.Run(testcase.field, func(t *testing.T) {
			assert := require.New(t)
			gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
				body := fmt.Sprintf(`{"success":true,"message":"OK","data":{"%s":"T"}}`, testcase.field)
				renderJSON(rw, http.StatusOK, body)
			})

			token, err := gateway.VerifyOtp(context.Background(), "admin@ride.example", "123456")
			assert.NoError(err)
			assert.Equal(resetflow.Token("T"), token)
		})
	}
}

func TestVerifyOtpPrefersFirstTokenField(t *testing.T) {
	assert := require.New(t)
	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		renderJSON(rw, http.StatusOK, `{"success":true,"message":"OK","data":{"token":"first","accessToken":"last"}}`)
	})

	token, err := gateway.VerifyOtp(context.Background(), "admin@ride.example", "123456")
	assert.NoError(err)
	assert.Equal(resetflow.Token("first"), token)
}

func TestVerifyOtpMissingToken(t *testing.T) {
	assert := require.New(t)
	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		renderJSON(rw, http.StatusOK, `{"success":true,"message":"OK","data":{}}`)
	})

	_, err := gateway.VerifyOtp(context.Background(), "admin@ride.example", "123456")
	assert.EqualError(err, resetflow.MissingTokenErrorMessage)

	var gatewayErr *resetflow.Error
	assert.ErrorAs(err, &gatewayErr)
	assert.Equal(resetflow.ErrorKindMissingToken, gatewayErr.Kind)
}

func TestResetPasswordSendsBearerTokenInHeaderOnly(t *testing.T) {
	assert := require.New(t)
	var gotAuthorization string
	var gotBody map[string]interface{}

	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		renderJSON(rw, http.StatusOK, `{"success":true,"message":"Password updated","data":null}`)
	})

	ack, err := gateway.ResetPassword(context.Background(), "G00d-Passw0rd", "reset-token")
	assert.NoError(err)
	assert.Equal("Password updated", ack.Message)
	assert.Equal("Bearer reset-token", gotAuthorization)
	// The password is the only body payload; the token travels in the header.
	assert.Equal(map[string]interface{}{"newPassword": "G00d-Passw0rd"}, gotBody)
}

// Round-trip through the real gateway and the core services: request, verify
// with the token under the resetToken field name, then reset.
func TestResetFlowRoundTrip(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()

	gateway := newGateway(t, func(rw http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SendResetOtpPath:
			renderJSON(rw, http.StatusOK, `{"success":true,"message":"OTP sent","data":null}`)
		case VerifyResetOtpPath:
			renderJSON(rw, http.StatusOK, `{"success":true,"message":"OK","data":{"resetToken":"T"}}`)
		case ResetPasswordPath:
			renderJSON(rw, http.StatusOK, `{"success":true,"message":"Password updated","data":null}`)
		default:
			rw.WriteHeader(http.StatusNotFound)
		}
	})

	log := logging.NewFakeLogger()
	stores := resetflow.NewFakeStoreProvider()
	sessionID := resetflow.SessionID("session-1")
	store := stores.ForSession(sessionID)

	_, err := requestresetotp.New(log, stores, gateway).Run(ctx, requestresetotp.Input{
		SessionID: sessionID,
		Email:     "a@b.com",
	})
	assert.NoError(err)
	assert.Equal("a@b.com", store.Get(ctx, resetflow.KeyEmail).Value)

	_, err = verifyresetotp.New(log, stores, gateway).Run(ctx, verifyresetotp.Input{
		SessionID: sessionID,
		Code:      "123456",
	})
	assert.NoError(err)
	assert.Equal("T", store.Get(ctx, resetflow.KeyToken).Value)
	assert.False(store.Get(ctx, resetflow.KeyEmail).IsPresent)

	_, err = resetpassword.New(log, stores, gateway).Run(ctx, resetpassword.Input{
		SessionID:            sessionID,
		NewPassword:          "G00d-Passw0rd",
		PasswordConfirmation: "G00d-Passw0rd",
	})
	assert.NoError(err)
	assert.False(store.Get(ctx, resetflow.KeyToken).IsPresent)
	assert.False(store.Get(ctx, resetflow.KeyEmail).IsPresent)
}
