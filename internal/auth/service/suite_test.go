package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bizcore/internal/auth/models"
	"bizcore/internal/auth/service/mocks"
	tenantmodels "bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockUsers   *mocks.MockUserStore
	mockTenants *mocks.MockTenantStore
	mockHasher  *mocks.MockPasswordHasher
	mockIssuer  *mocks.MockTokenIssuer
	service     *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUsers = mocks.NewMockUserStore(s.ctrl)
	s.mockTenants = mocks.NewMockTenantStore(s.ctrl)
	s.mockHasher = mocks.NewMockPasswordHasher(s.ctrl)
	s.mockIssuer = mocks.NewMockTokenIssuer(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(
		s.mockUsers,
		s.mockTenants,
		s.mockHasher,
		s.mockIssuer,
		WithLogger(logger),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// Shared fixture builders used across the test files.

func (s *ServiceSuite) newRegisterCommand() RegisterCommand {
	return RegisterCommand{
		Name:        "Alice",
		Email:       "alice@acme.test",
		Password:    "pw123456",
		CompanyName: "Acme",
		TaxNumber:   "TX-1",
		Phone:       "+1-555-0100",
		Industry:    "retail",
	}
}

func (s *ServiceSuite) newTestUser(userID id.UserID, tenantID id.TenantID) *models.User {
	return &models.User{
		ID:           userID,
		TenantID:     tenantID,
		Name:         "Alice",
		Email:        "alice@acme.test",
		PasswordHash: "$2a$10$stored-credential",
		Role:         models.RoleAdmin,
	}
}

func (s *ServiceSuite) newTestTenant(tenantID id.TenantID) *tenantmodels.Tenant {
	return &tenantmodels.Tenant{
		ID:        tenantID,
		Name:      "Acme",
		Email:     "alice@acme.test",
		TaxNumber: "TX-1",
	}
}
