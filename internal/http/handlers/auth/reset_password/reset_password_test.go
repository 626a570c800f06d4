package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"rideadmin/internal/core/domain/resetflow"
	service "rideadmin/internal/core/services/reset_password"
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
	request := httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(body))
	ctx := context.WithValue(request.Context(), resetsession.CONTEXT_SESSION_ID_KEY, SESSION_ID)
	return request.WithContext(ctx)
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"newPassword": "G00d-Passw0rd", "passwordConfirmation": "G00d-Passw0rd"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				SessionID:            SESSION_ID,
				NewPassword:          resetflow.RawPassword("G00d-Passw0rd"),
				PasswordConfirmation: resetflow.RawPassword("G00d-Passw0rd"),
			},
		},
		{
			id:             "missing fields",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "policy violation",
			body:           `{"newPassword": "abc123", "passwordConfirmation": "abc123"}`,
			err:            resetflow.ErrPasswordPolicyViolation,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "mismatch",
			body:           `{"newPassword": "G00d-Passw0rd", "passwordConfirmation": "0ther-Passw0rd"}`,
			err:            resetflow.ErrPasswordMismatch,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "expired session",
			body:           `{"newPassword": "G00d-Passw0rd", "passwordConfirmation": "G00d-Passw0rd"}`,
			err:            resetflow.ErrSessionExpired,
			expectedStatus: http.StatusGone,
		},
		{
			id:             "remote rejection",
			body:           `{"newPassword": "G00d-Passw0rd", "passwordConfirmation": "G00d-Passw0rd"}`,
			err:            resetflow.NewRemoteError("Reset token has expired"),
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
