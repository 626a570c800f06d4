package resetflow

import "errors"

var (
	ErrSessionExpired = errors.New("reset session expired")
	ErrInvalidOtpCode = errors.New("invalid OTP code")

	ErrPasswordRequired        = errors.New("password and confirmation are required")
	ErrPasswordPolicyViolation = errors.New(
		"password must have at least 8 characters, including uppercase, lowercase, number, and special character",
	)
	ErrPasswordMismatch = errors.New("passwords do not match")
)
