package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/auth"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/ratelimit"
	"yultimate_hub/internal/testutil"
)

type AuthSuite struct {
	suite.Suite
	ctx    context.Context
	db     *gorm.DB
	tokens *auth.TokenManager
	svc    *AuthService
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.SetupTestDB(s.T())
	s.tokens = auth.NewTokenManager("test-secret", 7*24*time.Hour, newClock())
	s.svc = NewAuthService(s.db, s.tokens, nil, "admin123")
}

func (s *AuthSuite) TestAdminLogin() {
	admin := createPerson(s.T(), s.db, "admin123", "admin@hub.test", "", models.RoleAdmin)

	res, err := s.svc.Login(s.ctx, LoginInput{UniqueUserID: "admin123", Role: "admin"})
	s.Require().NoError(err)
	s.Equal("Admin login successful!", res.Message)
	s.Equal(admin.ID, res.Person.ID)

	claims, err := s.tokens.Validate(res.Token)
	s.Require().NoError(err)
	s.Equal(admin.ID, claims.UserID)
	s.Equal([]string{models.RoleAdmin}, claims.Roles)
	s.Equal(7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func (s *AuthSuite) TestAdminLoginWrongCode() {
	createPerson(s.T(), s.db, "admin999", "admin@hub.test", "", models.RoleAdmin)
	_, err := s.svc.Login(s.ctx, LoginInput{UniqueUserID: "admin999", Role: "admin"})
	var ae *apperr.AuthError
	s.Require().True(errors.As(err, &ae), "got %v", err)
}

func (s *AuthSuite) TestAdminLoginRequiresAdminRole() {
	createPerson(s.T(), s.db, "admin123", "imposter@hub.test", "pw", models.RoleCoach)
	_, err := s.svc.Login(s.ctx, LoginInput{UniqueUserID: "admin123", Role: "admin"})
	var ae *apperr.AuthError
	s.Require().True(errors.As(err, &ae), "got %v", err)
}

func (s *AuthSuite) TestCoachLogin() {
	coach := createPerson(s.T(), s.db, "COA-1", "c@x.com", "pw", models.RoleCoach, models.RolePlayer)

	res, err := s.svc.Login(s.ctx, LoginInput{UniqueUserID: "COA-1", Password: "pw", Role: "coach"})
	s.Require().NoError(err)
	s.Equal("Coach login successful!", res.Message)

	claims, err := s.tokens.Validate(res.Token)
	s.Require().NoError(err)
	s.Equal(coach.ID, claims.UserID)
	s.ElementsMatch([]string{models.RoleCoach, models.RolePlayer}, claims.Roles)
}

func (s *AuthSuite) TestLoginFailures() {
	createPerson(s.T(), s.db, "PLA-1", "p@x.com", "pw", models.RolePlayer)
	createPerson(s.T(), s.db, "VOL-1", "v@x.com", "", models.RoleVolunteer)
	suspended := createPerson(s.T(), s.db, "PLA-2", "s@x.com", "pw", models.RolePlayer)
	s.Require().NoError(s.db.Model(suspended).Update("account_status", models.AccountSuspended).Error)

	tests := []struct {
		name   string
		in     LoginInput
		target any
	}{
		{"missing code", LoginInput{Password: "pw"}, new(*apperr.ValidationError)},
		{"missing password", LoginInput{UniqueUserID: "PLA-1"}, new(*apperr.ValidationError)},
		{"unknown role", LoginInput{UniqueUserID: "PLA-1", Password: "pw", Role: "owner"}, new(*apperr.ValidationError)},
		{"unknown code", LoginInput{UniqueUserID: "PLA-404", Password: "pw"}, new(*apperr.NotFoundError)},
		{"wrong password", LoginInput{UniqueUserID: "PLA-1", Password: "nope"}, new(*apperr.AuthError)},
		{"player as coach", LoginInput{UniqueUserID: "PLA-1", Password: "pw", Role: "coach"}, new(*apperr.AuthError)},
		{"no password hash", LoginInput{UniqueUserID: "VOL-1", Password: "pw"}, new(*apperr.AuthError)},
		{"suspended", LoginInput{UniqueUserID: "PLA-2", Password: "pw"}, new(*apperr.AuthError)},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Login(s.ctx, tt.in)
			s.Require().Error(err)
			s.True(errors.As(err, tt.target), "unexpected error %T: %v", err, err)
		})
	}
}

func (s *AuthSuite) TestMemberLoginWithRole() {
	createPerson(s.T(), s.db, "VOL-1", "v@x.com", "pw", models.RoleVolunteer)

	res, err := s.svc.Login(s.ctx, LoginInput{UniqueUserID: " VOL-1 ", Password: "pw", Role: "Volunteer"})
	s.Require().NoError(err)
	s.Equal("Login successful!", res.Message)
}

func (s *AuthSuite) TestLoginLimiter() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	svc := NewAuthService(s.db, s.tokens, ratelimit.New(client, 2, time.Minute), "admin123")
	createPerson(s.T(), s.db, "PLA-1", "p@x.com", "pw", models.RolePlayer)

	for i := 0; i < 2; i++ {
		_, err := svc.Login(s.ctx, LoginInput{UniqueUserID: "PLA-1", Password: "bad"})
		var ae *apperr.AuthError
		s.Require().True(errors.As(err, &ae), "attempt %d: %v", i, err)
	}

	_, err := svc.Login(s.ctx, LoginInput{UniqueUserID: "PLA-1", Password: "pw"})
	var re *apperr.RateLimitedError
	s.Require().True(errors.As(err, &re), "got %v", err)

	mr.FastForward(time.Minute + time.Second)
	_, err = svc.Login(s.ctx, LoginInput{UniqueUserID: "PLA-1", Password: "pw"})
	s.Require().NoError(err)
	s.False(mr.Exists("login_rate:PLA-1"))
}
