package identitystub

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	e "rideadmin/internal/core/domain/errors"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/implementations/identity"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service is an in-memory rendition of the remote identity provider, meant
// for local development and end-to-end exercising of the HTTP gateway. OTP
// codes are logged instead of emailed; reset tokens are single-use.
type Service struct {
	log        logging.Logger
	now        func() time.Time
	otpTTL     time.Duration
	isTestMode bool

	lock      sync.Mutex
	otps      map[string]otpRecord
	tokens    map[string]string
	passwords map[string][]byte
	rand      *rand.Rand
}

type otpRecord struct {
	code      string
	expiresAt time.Time
}

func New(log logging.Logger, now func() time.Time, otpTTL time.Duration, isTestMode bool) *Service {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Service{
		log:        log,
		now:        now,
		otpTTL:     otpTTL,
		isTestMode: isTestMode,
		otps:       make(map[string]otpRecord),
		tokens:     make(map[string]string),
		passwords:  make(map[string][]byte),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Router() chi.Router {
	router := chi.NewRouter()
	router.Post(identity.SendResetOtpPath, s.sendResetOtp)
	router.Post(identity.VerifyResetOtpPath, s.verifyResetOtp)
	router.Post(identity.ResetPasswordPath, s.resetPassword)
	return router
}

// PasswordHash returns the bcrypt hash stored for email, for tests.
func (s *Service) PasswordHash(email string) ([]byte, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	hash, ok := s.passwords[email]
	return hash, ok
}

func (s *Service) sendResetOtp(rw http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		renderEnvelope(rw, http.StatusBadRequest, false, "Email is required", nil)
		return
	}

	code := fmt.Sprintf("%06d", s.rand.Intn(1000000))
	s.lock.Lock()
	s.otps[body.Email] = otpRecord{code: code, expiresAt: s.now().Add(s.otpTTL)}
	s.lock.Unlock()

	s.log.Info(
		r.Context(),
		"Issued reset OTP.",
		logging.Entry("email", body.Email),
		logging.Entry("code", code),
	)
	if s.isTestMode {
		rw.Header().Set("x-test-otp-code", code)
	}
	renderEnvelope(rw, http.StatusOK, true, "OTP sent", nil)
}

func (s *Service) verifyResetOtp(rw http.ResponseWriter, r *http.Request) {
	var body struct {
		Email   string `json:"email"`
		OtpCode string `json:"otpCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		renderEnvelope(rw, http.StatusBadRequest, false, "Invalid request data", nil)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	record, ok := s.otps[body.Email]
	if !ok || record.code != body.OtpCode || s.now().After(record.expiresAt) {
		renderEnvelope(rw, http.StatusUnprocessableEntity, false, "Invalid or expired OTP", nil)
		return
	}
	delete(s.otps, body.Email)

	token := uuid.New().String()
	s.tokens[token] = body.Email
	renderEnvelope(rw, http.StatusOK, true, "OTP verified", map[string]string{"resetToken": token})
}

func (s *Service) resetPassword(rw http.ResponseWriter, r *http.Request) {
	token, ok := parseBearerToken(r)
	if !ok {
		renderEnvelope(rw, http.StatusUnauthorized, false, "Invalid or expired reset token", nil)
		return
	}
	var body struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewPassword == "" {
		renderEnvelope(rw, http.StatusBadRequest, false, "New password is required", nil)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		renderEnvelope(rw, http.StatusUnauthorized, false, "Invalid or expired reset token", nil)
		return
	}
	// Tokens are single-use even when hashing fails afterwards.
	delete(s.tokens, token)

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		renderEnvelope(rw, http.StatusInternalServerError, false, "", nil)
		return
	}
	s.passwords[email] = hash
	renderEnvelope(rw, http.StatusOK, true, "Password updated", nil)
}

func parseBearerToken(r *http.Request) (token string, ok bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, "Bearer ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func renderEnvelope(rw http.ResponseWriter, status int, success bool, message string, data interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	content, err := json.Marshal(struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Success: success, Message: message, Data: data})
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.WriteHeader(status)
	rw.Write(content)
}
