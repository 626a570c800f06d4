package resetflow

import (
	"context"
	c "rideadmin/internal/core/domain/common"
)

type Stage int

const (
	StageIdle Stage = iota
	StageOtpRequested
	StageOtpVerified
)

func (s Stage) String() string {
	switch s {
	case StageOtpRequested:
		return "otp_requested"
	case StageOtpVerified:
		return "otp_verified"
	default:
		return "idle"
	}
}

// Session is a snapshot of one client's reset session. The stage is derived
// from which credentials are on record, never stored on its own; a completed
// reset clears both keys and the session reads as idle again.
type Session struct {
	ID    SessionID
	Email c.Optional[string]
	Token c.Optional[Token]
}

func LoadSession(ctx context.Context, id SessionID, store Store) Session {
	session := Session{ID: id}
	if email := store.Get(ctx, KeyEmail); email.IsPresent {
		session.Email = c.NewOptional(email.Value, true)
	}
	if token := store.Get(ctx, KeyToken); token.IsPresent {
		session.Token = c.NewOptional(Token(token.Value), true)
	}
	return session
}

func (s Session) Stage() Stage {
	switch {
	case s.Email.IsPresent:
		return StageOtpRequested
	case s.Token.IsPresent:
		return StageOtpVerified
	default:
		return StageIdle
	}
}

// ExpiredForVerification reports whether the stored state no longer supports
// the OTP verification step: either no email is on record at all, or a token
// lingers from an earlier verification and must not be amended by a second one.
func (s Session) ExpiredForVerification() bool {
	return !s.Email.IsPresent || s.Token.IsPresent
}

// CanResend requires an email on record; a lingering token does not block a
// resend, it is cleared by it.
func (s Session) CanResend() bool {
	return s.Email.IsPresent
}

// CanReset requires a verified token on record. A missing token means the
// session expired, not that the input was invalid.
func (s Session) CanReset() bool {
	return s.Token.IsPresent
}
