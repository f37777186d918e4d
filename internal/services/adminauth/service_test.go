package adminauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/promoarcade/snakesladders/internal/dependencies/mocks"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage/memory"
	"github.com/promoarcade/snakesladders/internal/testutil"
)

type AdminAuthTestSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func (s *AdminAuthTestSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func TestAdminAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AdminAuthTestSuite))
}

func (s *AdminAuthTestSuite) TestBootstrapSeedsDefaultCredential() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	s.NoError(s.service.Login(s.ctx, DefaultUsername, DefaultPassword))
}

func (s *AdminAuthTestSuite) TestBootstrapWithConfiguredPassword() {
	cfg := DefaultConfig()
	cfg.Password = "s3cure-password"
	s.Require().NoError(s.service.Bootstrap(s.ctx, cfg))

	s.NoError(s.service.Login(s.ctx, DefaultUsername, "s3cure-password"))
	s.Error(s.service.Login(s.ctx, DefaultUsername, DefaultPassword))
}

func (s *AdminAuthTestSuite) TestBootstrapPreservesExistingCredential() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))
	s.Require().NoError(s.service.ChangePassword(s.ctx, DefaultPassword, "rotated-password"))

	// A restart re-runs bootstrap; the rotated password must survive
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	s.NoError(s.service.Login(s.ctx, DefaultUsername, "rotated-password"))
	s.Error(s.service.Login(s.ctx, DefaultUsername, DefaultPassword))
}

func (s *AdminAuthTestSuite) TestLoginWrongPassword() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	err := s.service.Login(s.ctx, DefaultUsername, "wrong")
	s.True(errors.Is(err, model.ErrInvalidCredentials))
}

func (s *AdminAuthTestSuite) TestLoginWrongUsername() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	err := s.service.Login(s.ctx, "root", DefaultPassword)
	s.True(errors.Is(err, model.ErrInvalidCredentials))
}

func (s *AdminAuthTestSuite) TestLoginWithoutBootstrap() {
	err := s.service.Login(s.ctx, DefaultUsername, DefaultPassword)
	s.True(errors.Is(err, model.ErrInvalidCredentials))
}

func (s *AdminAuthTestSuite) TestChangePassword() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	s.Require().NoError(s.service.ChangePassword(s.ctx, DefaultPassword, "new-password-1"))

	s.NoError(s.service.Login(s.ctx, DefaultUsername, "new-password-1"))
	s.Error(s.service.Login(s.ctx, DefaultUsername, DefaultPassword))
}

func (s *AdminAuthTestSuite) TestChangePasswordWrongCurrent() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	err := s.service.ChangePassword(s.ctx, "wrong", "new-password-1")
	s.True(errors.Is(err, model.ErrIncorrectPassword))

	s.NoError(s.service.Login(s.ctx, DefaultUsername, DefaultPassword))
}

func (s *AdminAuthTestSuite) TestChangePasswordTooShort() {
	s.Require().NoError(s.service.Bootstrap(s.ctx, DefaultConfig()))

	err := s.service.ChangePassword(s.ctx, DefaultPassword, "short")
	s.True(errors.Is(err, model.ErrPasswordTooWeak))
}
