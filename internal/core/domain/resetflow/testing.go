package resetflow

import (
	"context"
	c "rideadmin/internal/core/domain/common"
	"sync"
)

type FakeStore struct {
	values map[Key]string
	lock   sync.Mutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[Key]string)}
}

func (s *FakeStore) Put(ctx context.Context, key Key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
}

func (s *FakeStore) Get(ctx context.Context, key Key) c.Optional[string] {
	s.lock.Lock()
	defer s.lock.Unlock()
	value, ok := s.values[key]
	return c.NewOptional(value, ok)
}

func (s *FakeStore) Clear(ctx context.Context, key Key) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
}

type FakeStoreProvider struct {
	Stores map[SessionID]*FakeStore
	lock   sync.Mutex
}

func NewFakeStoreProvider() *FakeStoreProvider {
	return &FakeStoreProvider{Stores: make(map[SessionID]*FakeStore)}
}

func (p *FakeStoreProvider) ForSession(id SessionID) Store {
	p.lock.Lock()
	defer p.lock.Unlock()
	store, ok := p.Stores[id]
	if !ok {
		store = NewFakeStore()
		p.Stores[id] = store
	}
	return store
}

type FakeGateway struct {
	RequestOtpAck   Ack
	RequestOtpError error
	RequestOtpCalls int
	RequestedEmails []c.Email

	VerifyOtpToken Token
	VerifyOtpError error
	VerifyOtpCalls int
	VerifiedEmail  c.Email
	VerifiedCode   OtpCode

	ResetPasswordAck   Ack
	ResetPasswordError error
	ResetPasswordCalls int
	ResetNewPassword   RawPassword
	ResetToken         Token

	lock sync.Mutex
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) RequestOtp(ctx context.Context, email c.Email) (Ack, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.RequestOtpCalls++
	if g.RequestOtpError != nil {
		return Ack{}, g.RequestOtpError
	}
	g.RequestedEmails = append(g.RequestedEmails, email)
	return g.RequestOtpAck, nil
}

func (g *FakeGateway) VerifyOtp(ctx context.Context, email c.Email, code OtpCode) (Token, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.VerifyOtpCalls++
	if g.VerifyOtpError != nil {
		return "", g.VerifyOtpError
	}
	g.VerifiedEmail = email
	g.VerifiedCode = code
	return g.VerifyOtpToken, nil
}

func (g *FakeGateway) ResetPassword(
	ctx context.Context,
	newPassword RawPassword,
	token Token,
) (Ack, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.ResetPasswordCalls++
	if g.ResetPasswordError != nil {
		return Ack{}, g.ResetPasswordError
	}
	g.ResetNewPassword = newPassword
	g.ResetToken = token
	return g.ResetPasswordAck, nil
}

func (g *FakeGateway) CallCount() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.RequestOtpCalls + g.VerifyOtpCalls + g.ResetPasswordCalls
}

type FakeSessionIDGenerator struct {
	ID SessionID
}

func NewFakeSessionIDGenerator(id string) *FakeSessionIDGenerator {
	return &FakeSessionIDGenerator{ID: SessionID(id)}
}

func (g *FakeSessionIDGenerator) GenerateResetSessionID() SessionID {
	return g.ID
}
