package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,TokenIssuer,TokenPersister,SessionUpdater

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"propertyhub/internal/auth/models"
	"propertyhub/internal/auth/service/mocks"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/secrets"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserStore *mocks.MockUserStore
	mockIssuer    *mocks.MockTokenIssuer
	mockPersister *mocks.MockTokenPersister
	mockSessions  *mocks.MockSessionUpdater
	service       *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUserStore = mocks.NewMockUserStore(s.ctrl)
	s.mockIssuer = mocks.NewMockTokenIssuer(s.ctrl)
	s.mockPersister = mocks.NewMockTokenPersister(s.ctrl)
	s.mockSessions = mocks.NewMockSessionUpdater(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service, _ = New(
		s.mockUserStore,
		s.mockIssuer,
		s.mockPersister,
		s.mockSessions,
		WithLogger(logger),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newStoredUser(email, password string, role domain.RoleID) *models.User {
	hash, err := secrets.Hash(password)
	s.Require().NoError(err)
	return &models.User{
		ID:           domain.UserID(42),
		Role:         role,
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        email,
		PasswordHash: hash,
	}
}

func (s *ServiceSuite) TestRegisterSuccess() {
	ctx := context.Background()
	in := models.RegisterInput{
		Role:      domain.RoleOwner,
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Password:  "correct horse",
	}

	s.mockUserStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) error {
			s.Equal(domain.RoleOwner, user.Role)
			s.Equal(in.Email, user.Email)
			s.NoError(secrets.Verify(in.Password, user.PasswordHash))
			user.ID = domain.UserID(7)
			return nil
		})
	s.mockIssuer.EXPECT().Issue(ctx, domain.UserID(7), domain.RoleOwner).Return("tok-7", nil)
	s.mockPersister.EXPECT().Persist(ctx, "tok-7").Return(nil)
	s.mockSessions.EXPECT().UpdateAuthState(ctx, "tok-7", domain.RoleOwner)

	res, err := s.service.Register(ctx, in)
	s.Require().NoError(err)
	s.Equal("tok-7", res.Token)
	s.Equal(domain.UserID(7), res.User.ID)
}

func (s *ServiceSuite) TestRegisterDefaultsInvalidRoleToTenant() {
	ctx := context.Background()
	in := models.RegisterInput{
		Role:     domain.RoleID(99),
		Email:    "t@example.com",
		Password: "pw-long-enough",
	}

	s.mockUserStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) error {
			s.Equal(domain.RoleTenant, user.Role)
			user.ID = domain.UserID(8)
			return nil
		})
	s.mockIssuer.EXPECT().Issue(ctx, domain.UserID(8), domain.RoleTenant).Return("tok-8", nil)
	s.mockPersister.EXPECT().Persist(ctx, "tok-8").Return(nil)
	s.mockSessions.EXPECT().UpdateAuthState(ctx, "tok-8", domain.RoleTenant)

	_, err := s.service.Register(ctx, in)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestRegisterDuplicateEmail() {
	ctx := context.Background()
	s.mockUserStore.EXPECT().Create(ctx, gomock.Any()).
		Return(dErrors.New(dErrors.CodeConflict, "email already registered"))

	_, err := s.service.Register(ctx, models.RegisterInput{
		Role:     domain.RoleTenant,
		Email:    "dup@example.com",
		Password: "pw-long-enough",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestLoginSuccess() {
	ctx := context.Background()
	user := s.newStoredUser("asha@example.com", "correct horse", domain.RoleTenant)

	s.mockUserStore.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	s.mockIssuer.EXPECT().Issue(ctx, user.ID, user.Role).Return("tok-42", nil)
	s.mockPersister.EXPECT().Persist(ctx, "tok-42").Return(nil)
	s.mockSessions.EXPECT().UpdateAuthState(ctx, "tok-42", domain.RoleTenant)

	res, err := s.service.Login(ctx, models.Credentials{
		Email:    user.Email,
		Password: "correct horse",
		Device:   "Chrome on Linux",
	})
	s.Require().NoError(err)
	s.Equal("tok-42", res.Token)
	s.Equal(user.ID, res.User.ID)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	ctx := context.Background()
	user := s.newStoredUser("asha@example.com", "correct horse", domain.RoleTenant)
	s.mockUserStore.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

	_, err := s.service.Login(ctx, models.Credentials{Email: user.Email, Password: "wrong"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLoginUnknownEmailCollapsesToUnauthorized() {
	ctx := context.Background()
	s.mockUserStore.EXPECT().FindByEmail(ctx, "ghost@example.com").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "user not found"))

	_, err := s.service.Login(ctx, models.Credentials{Email: "ghost@example.com", Password: "pw"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.False(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestLoginPersistFailureStillSignsIn() {
	ctx := context.Background()
	user := s.newStoredUser("asha@example.com", "correct horse", domain.RoleTenant)

	s.mockUserStore.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	s.mockIssuer.EXPECT().Issue(ctx, user.ID, user.Role).Return("tok-42", nil)
	s.mockPersister.EXPECT().Persist(ctx, "tok-42").Return(errors.New("store down"))
	s.mockSessions.EXPECT().UpdateAuthState(ctx, "tok-42", domain.RoleTenant)

	res, err := s.service.Login(ctx, models.Credentials{Email: user.Email, Password: "correct horse"})
	s.Require().NoError(err)
	s.Equal("tok-42", res.Token)
}

func (s *ServiceSuite) TestChangePasswordSuccess() {
	ctx := context.Background()
	user := s.newStoredUser("asha@example.com", "old password", domain.RoleTenant)

	s.mockUserStore.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	s.mockUserStore.EXPECT().UpdatePassword(ctx, user.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.UserID, hash string) error {
			s.NoError(secrets.Verify("new password", hash))
			return nil
		})

	err := s.service.ChangePassword(ctx, user.ID, "old password", "new password")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestChangePasswordWrongCurrent() {
	ctx := context.Background()
	user := s.newStoredUser("asha@example.com", "old password", domain.RoleTenant)
	s.mockUserStore.EXPECT().FindByID(ctx, user.ID).Return(user, nil)

	err := s.service.ChangePassword(ctx, user.ID, "not the password", "new password")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLogoutDelegatesToSessions() {
	ctx := context.Background()
	s.mockSessions.EXPECT().Logout(ctx)
	s.service.Logout(ctx)
}
