package requestresetotp

import (
	"context"
	c "rideadmin/internal/core/domain/common"
	"rideadmin/internal/core/domain/logging"
	"rideadmin/internal/core/domain/resetflow"
	"rideadmin/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	SESSION_ID = resetflow.SessionID("session-1")
	EMAIL      = c.Email("admin@ride.example")
)

type testSuite struct {
	suite.Suite
	Logger  *logging.FakeLogger
	Stores  *resetflow.FakeStoreProvider
	Gateway *resetflow.FakeGateway
	Service services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Stores = resetflow.NewFakeStoreProvider()
	suite.Gateway = resetflow.NewFakeGateway()
	suite.Service = New(suite.Logger, suite.Stores, suite.Gateway)
}

func TestRequestResetOtpService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccessStoresEmail() {
	ctx := context.Background()
	s.Gateway.RequestOtpAck = resetflow.Ack{Message: "OTP sent"}

	result, err := s.Service.Run(ctx, Input{SessionID: SESSION_ID, Email: EMAIL})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal("OTP sent", result.Message)
	assert.Equal([]c.Email{EMAIL}, s.Gateway.RequestedEmails)

	store := s.Stores.ForSession(SESSION_ID)
	email := store.Get(ctx, resetflow.KeyEmail)
	assert.True(email.IsPresent)
	assert.Equal(string(EMAIL), email.Value)
	assert.False(store.Get(ctx, resetflow.KeyToken).IsPresent)
}

func (s *testSuite) TestSuccessClearsLingeringToken() {
	ctx := context.Background()
	store := s.Stores.ForSession(SESSION_ID)
	store.Put(ctx, resetflow.KeyEmail, "previous@ride.example")
	store.Put(ctx, resetflow.KeyToken, "stale-token")

	_, err := s.Service.Run(ctx, Input{SessionID: SESSION_ID, Email: EMAIL})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(string(EMAIL), store.Get(ctx, resetflow.KeyEmail).Value)
	assert.False(store.Get(ctx, resetflow.KeyToken).IsPresent)
}

func (s *testSuite) TestGatewayErrorLeavesStoreUntouched() {
	ctx := context.Background()
	store := s.Stores.ForSession(SESSION_ID)
	store.Put(ctx, resetflow.KeyEmail, "previous@ride.example")
	s.Gateway.RequestOtpError = resetflow.NewRemoteError("No admin found with this email")

	_, err := s.Service.Run(ctx, Input{SessionID: SESSION_ID, Email: EMAIL})

	assert := s.Require()
	assert.EqualError(err, "No admin found with this email")
	assert.Equal("previous@ride.example", store.Get(ctx, resetflow.KeyEmail).Value)
}
