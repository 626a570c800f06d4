package verifyresetotp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"rideadmin/internal/core/domain/resetflow"
	service "rideadmin/internal/core/services/verify_reset_otp"
	"rideadmin/internal/http/handlers/resetsession"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const SESSION_ID = resetflow.SessionID("session-1")

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func newRequest(body string) *http.Request {
	request := httptest.NewRequest(
		http.MethodPost,
		"/auth/password_reset/verification",
		strings.NewReader(body),
	)
	ctx := context.WithValue(request.Context(), resetsession.CONTEXT_SESSION_ID_KEY, SESSION_ID)
	return request.WithContext(ctx)
}

func TestVerifyResetOtpHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"otpCode": "123456"}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{SessionID: SESSION_ID, Code: resetflow.OtpCode("123456")},
		},
		{
			id:             "missing code",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "short code",
			body:           `{"otpCode": "12345"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "non-digit code",
			body:           `{"otpCode": "12345a"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "expired session",
			body:           `{"otpCode": "123456"}`,
			err:            resetflow.ErrSessionExpired,
			expectedStatus: http.StatusGone,
		},
		{
			id:             "remote rejection",
			body:           `{"otpCode": "123456"}`,
			err:            resetflow.NewRemoteError("Invalid or expired OTP"),
			expectedStatus: http.StatusBadGateway,
		},
		{
			id:             "missing token in response",
			body:           `{"otpCode": "123456"}`,
			err:            resetflow.NewMissingTokenError(),
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.err}
			handler := New(stub)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, newRequest(testcase.body))

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			assert.Equal(t, testcase.expectedInput, stub.input)
		})
	}
}

func TestVerifyResetOtpHandlerExpiredMessage(t *testing.T) {
	stub := &stubService{err: resetflow.ErrSessionExpired}
	handler := New(stub)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, newRequest(`{"otpCode": "123456"}`))

	assert.Equal(t, http.StatusGone, recorder.Code)
	assert.JSONEq(t, `{"error": "OTP Expired"}`, recorder.Body.String())
}
