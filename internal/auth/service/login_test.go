package service

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

func (s *ServiceSuite) TestLogin_Success() {
	userID := id.NewUserID()
	tenantID := id.NewTenantID()
	user := s.newTestUser(userID, tenantID)

	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "alice@acme.test").Return(user, nil)
	s.mockHasher.EXPECT().Verify("pw123456", user.PasswordHash).Return(true)
	s.mockIssuer.EXPECT().Issue(userID).Return("signed-token", nil)

	session, err := s.service.Login(context.Background(), "alice@acme.test", "pw123456")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), session)
	assert.Equal(s.T(), "signed-token", session.Token)
	assert.Equal(s.T(), userID.String(), session.User.ID)
}

func (s *ServiceSuite) TestLogin_UnknownEmail() {
	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "nobody@acme.test").Return(nil, sentinel.ErrNotFound)
	s.mockHasher.EXPECT().DummyCompare("pw123456")

	session, err := s.service.Login(context.Background(), "nobody@acme.test", "pw123456")
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLogin_WrongPassword() {
	user := s.newTestUser(id.NewUserID(), id.NewTenantID())

	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "alice@acme.test").Return(user, nil)
	s.mockHasher.EXPECT().Verify("wrong", user.PasswordHash).Return(false)

	session, err := s.service.Login(context.Background(), "alice@acme.test", "wrong")
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

// The two failure modes must be indistinguishable to the caller.
func (s *ServiceSuite) TestLogin_FailureMessagesMatch() {
	user := s.newTestUser(id.NewUserID(), id.NewTenantID())

	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "nobody@acme.test").Return(nil, sentinel.ErrNotFound)
	s.mockHasher.EXPECT().DummyCompare("pw")
	_, errUnknown := s.service.Login(context.Background(), "nobody@acme.test", "pw")

	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "alice@acme.test").Return(user, nil)
	s.mockHasher.EXPECT().Verify("pw", user.PasswordHash).Return(false)
	_, errMismatch := s.service.Login(context.Background(), "alice@acme.test", "pw")

	require.Error(s.T(), errUnknown)
	require.Error(s.T(), errMismatch)
	assert.Equal(s.T(), errUnknown.Error(), errMismatch.Error())
}

func (s *ServiceSuite) TestLogin_StoreFailureIsInternal() {
	s.mockUsers.EXPECT().FindByEmailWithCredential(gomock.Any(), "alice@acme.test").Return(nil, sentinel.ErrUnavailable)

	session, err := s.service.Login(context.Background(), "alice@acme.test", "pw123456")
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInternal))
}
