package resetflow

import (
	"context"
	c "rideadmin/internal/core/domain/common"
)

// Token is the bearer credential issued by the identity service after a
// successful OTP verification. It authorizes exactly one password reset.
type Token string

func (t Token) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Ack struct {
	Message string
}

const (
	FallbackErrorMessage     = "Something went wrong. Please try again."
	MissingTokenErrorMessage = "Reset token was not returned by server."
)

type ErrorKind int

const (
	// ErrorKindRemote means the identity service rejected the request.
	ErrorKindRemote ErrorKind = iota
	// ErrorKindTransport means no usable response arrived at all.
	ErrorKindTransport
	// ErrorKindMissingToken means the verify call succeeded but the response
	// carried no token under any of the known field names.
	ErrorKindMissingToken
)

// Error is the uniform failure shape for all gateway calls. Message is safe
// to surface to the end user verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewRemoteError(message string) *Error {
	if message == "" {
		message = FallbackErrorMessage
	}
	return &Error{Kind: ErrorKindRemote, Message: message}
}

func NewTransportError() *Error {
	return &Error{Kind: ErrorKindTransport, Message: FallbackErrorMessage}
}

func NewMissingTokenError() *Error {
	return &Error{Kind: ErrorKindMissingToken, Message: MissingTokenErrorMessage}
}

// Gateway translates reset-flow intent into calls against the remote
// identity service. Calls are never retried and follow the transport's
// default timeout; failures are normalized to *Error.
type Gateway interface {
	RequestOtp(ctx context.Context, email c.Email) (Ack, error)
	VerifyOtp(ctx context.Context, email c.Email, code OtpCode) (Token, error)
	ResetPassword(ctx context.Context, newPassword RawPassword, token Token) (Ack, error)
}
