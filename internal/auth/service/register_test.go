package service

import (
	"context"
	"errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bizcore/internal/auth/models"
	tenantmodels "bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

func (s *ServiceSuite) TestRegister_Success() {
	cmd := s.newRegisterCommand()

	var createdTenant *tenantmodels.Tenant
	var createdUser *models.User

	s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
	s.mockTenants.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, t *tenantmodels.Tenant) error {
			createdTenant = t
			return nil
		})
	s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			createdUser = u
			return nil
		})
	s.mockIssuer.EXPECT().Issue(gomock.Any()).Return("signed-token", nil)

	session, err := s.service.Register(context.Background(), cmd)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), session)

	assert.Equal(s.T(), "signed-token", session.Token)
	assert.Equal(s.T(), "Alice", session.User.Name)
	assert.Equal(s.T(), "alice@acme.test", session.User.Email)
	assert.Equal(s.T(), string(models.RoleAdmin), session.User.Role)

	require.NotNil(s.T(), createdTenant)
	require.NotNil(s.T(), createdUser)
	assert.Equal(s.T(), createdTenant.ID, createdUser.TenantID)
	assert.Equal(s.T(), "TX-1", createdTenant.TaxNumber)
	assert.Equal(s.T(), "$2a$10$hashed", createdUser.PasswordHash)
	assert.Equal(s.T(), models.RoleAdmin, createdUser.Role)
}

func (s *ServiceSuite) TestRegister_DuplicateTaxNumberIsConflict() {
	cmd := s.newRegisterCommand()

	s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
	s.mockTenants.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

	session, err := s.service.Register(context.Background(), cmd)
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestRegister_DuplicateEmailCompensatesTenant() {
	cmd := s.newRegisterCommand()

	var createdTenantID id.TenantID
	var deletedTenantID id.TenantID

	s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
	s.mockTenants.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, t *tenantmodels.Tenant) error {
			createdTenantID = t.ID
			return nil
		})
	s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)
	s.mockTenants.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenantID id.TenantID) error {
			deletedTenantID = tenantID
			return nil
		})

	session, err := s.service.Register(context.Background(), cmd)
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(s.T(), createdTenantID, deletedTenantID)
}

func (s *ServiceSuite) TestRegister_CompensationToleratesMissingTenant() {
	cmd := s.newRegisterCommand()

	s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
	s.mockTenants.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)
	s.mockTenants.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(sentinel.ErrNotFound)

	_, err := s.service.Register(context.Background(), cmd)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestRegister_TokenFailureIsInternal() {
	cmd := s.newRegisterCommand()

	s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
	s.mockTenants.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockIssuer.EXPECT().Issue(gomock.Any()).Return("", errors.New("key unavailable"))

	session, err := s.service.Register(context.Background(), cmd)
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestRegister_HashFailureStopsEarly() {
	cmd := s.newRegisterCommand()
	cmd.Password = ""

	s.mockHasher.EXPECT().Hash("").Return("", dErrors.New(dErrors.CodeValidation, "password must not be empty"))

	session, err := s.service.Register(context.Background(), cmd)
	require.Error(s.T(), err)
	assert.Nil(s.T(), session)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}
