package service

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

func (s *ServiceSuite) TestLoadIdentity_Success() {
	userID := id.NewUserID()
	tenantID := id.NewTenantID()
	user := s.newTestUser(userID, tenantID)

	s.mockUsers.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)

	identity, err := s.service.LoadIdentity(context.Background(), userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), userID, identity.UserID)
	assert.Equal(s.T(), tenantID, identity.TenantID)
	assert.Equal(s.T(), models.RoleAdmin, identity.Role)
}

func (s *ServiceSuite) TestLoadIdentity_DeletedUser() {
	userID := id.NewUserID()
	s.mockUsers.EXPECT().FindByID(gomock.Any(), userID).Return(nil, sentinel.ErrNotFound)

	identity, err := s.service.LoadIdentity(context.Background(), userID)
	require.Error(s.T(), err)
	assert.Nil(s.T(), identity)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetUser_ReturnsPublicProjection() {
	userID := id.NewUserID()
	user := s.newTestUser(userID, id.NewTenantID())

	s.mockUsers.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)

	public, err := s.service.GetUser(context.Background(), userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), userID.String(), public.ID)
	assert.Equal(s.T(), user.Name, public.Name)
	assert.Equal(s.T(), user.Email, public.Email)
	assert.Equal(s.T(), string(user.Role), public.Role)
}

func (s *ServiceSuite) TestGetUser_NotFound() {
	userID := id.NewUserID()
	s.mockUsers.EXPECT().FindByID(gomock.Any(), userID).Return(nil, sentinel.ErrNotFound)

	public, err := s.service.GetUser(context.Background(), userID)
	require.Error(s.T(), err)
	assert.Nil(s.T(), public)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}
