package resetsession

import (
	"context"
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/resetflow"
	"time"
)

const (
	COOKIE_NAME        = "reset_session"
	SESSION_ID_MAX_LEN = 128
)

type contextKey string

const CONTEXT_SESSION_ID_KEY = contextKey("resetSessionID")

// SetSessionIDToContext reads the reset-session cookie and puts the session
// ID into the request context, minting a fresh ID (and setting the cookie)
// when none is present. Every reset-flow handler runs behind it.
func SetSessionIDToContext(
	generator resetflow.SessionIDGenerator,
	ttl time.Duration,
) func(http.Handler) http.Handler {
	if generator == nil {
		panic(e.NewNilArgumentError("generator"))
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := parseCookie(r)
			if !ok {
				sessionID = generator.GenerateResetSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     COOKIE_NAME,
					Value:    string(sessionID),
					Path:     "/auth",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
				})
			}
			ctx := context.WithValue(r.Context(), CONTEXT_SESSION_ID_KEY, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (resetflow.SessionID, bool) {
	sessionID, ok := ctx.Value(CONTEXT_SESSION_ID_KEY).(resetflow.SessionID)
	return sessionID, ok
}

func parseCookie(r *http.Request) (sessionID resetflow.SessionID, ok bool) {
	cookie, err := r.Cookie(COOKIE_NAME)
	if err != nil || cookie.Value == "" || len(cookie.Value) > SESSION_ID_MAX_LEN {
		return sessionID, false
	}
	return resetflow.SessionID(cookie.Value), true
}
