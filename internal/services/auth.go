package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/auth"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/ratelimit"
)

type LoginInput struct {
	UniqueUserID string `json:"uniqueUserId"`
	Password     string `json:"password"`
	Role         string `json:"role"`
}

type LoginResult struct {
	Message string
	Person  *models.Person
	Token   string
}

// loginVariant is one way of proving who you are. check runs before the
// person is looked up, verify after.
type loginVariant interface {
	check(in LoginInput) error
	verify(p *models.Person, in LoginInput) error
	message() string
}

// AdminLogin accepts the configured admin code for a person holding the admin role.
type AdminLogin struct{ code string }

func (a AdminLogin) check(in LoginInput) error {
	if a.code == "" || in.UniqueUserID != a.code {
		return apperr.Auth("Invalid Admin Code!")
	}
	return nil
}

func (a AdminLogin) verify(p *models.Person, _ LoginInput) error {
	if !p.HasRole(models.RoleAdmin) {
		return errInvalidCredentials
	}
	return nil
}

func (AdminLogin) message() string { return "Admin login successful!" }

// CoachLogin needs a password and the coach role.
type CoachLogin struct{}

func (CoachLogin) check(in LoginInput) error { return requirePassword(in) }

func (CoachLogin) verify(p *models.Person, in LoginInput) error {
	if !p.HasRole(models.RoleCoach) {
		return errInvalidCredentials
	}
	return comparePassword(p, in.Password)
}

func (CoachLogin) message() string { return "Coach login successful!" }

// MemberLogin covers players and volunteers.
type MemberLogin struct{ role string }

func (MemberLogin) check(in LoginInput) error { return requirePassword(in) }

func (m MemberLogin) verify(p *models.Person, in LoginInput) error {
	if m.role != "" && !p.HasRole(m.role) {
		return errInvalidCredentials
	}
	return comparePassword(p, in.Password)
}

func (MemberLogin) message() string { return "Login successful!" }

var errInvalidCredentials = apperr.Auth("invalid credentials")

func requirePassword(in LoginInput) error {
	if in.Password == "" {
		return apperr.Validation("Password is required.")
	}
	return nil
}

func comparePassword(p *models.Person, password string) error {
	if p.PasswordHash == "" {
		return errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return errInvalidCredentials
	}
	return nil
}

type AuthService struct {
	db        *gorm.DB
	tokens    *auth.TokenManager
	limiter   *ratelimit.LoginLimiter
	adminCode string
}

// NewAuthService wires login. limiter may be nil.
func NewAuthService(db *gorm.DB, tokens *auth.TokenManager, limiter *ratelimit.LoginLimiter, adminCode string) *AuthService {
	return &AuthService{db: db, tokens: tokens, limiter: limiter, adminCode: adminCode}
}

func (s *AuthService) variantFor(role string) (loginVariant, error) {
	switch role {
	case models.RoleAdmin:
		return AdminLogin{code: s.adminCode}, nil
	case models.RoleCoach:
		return CoachLogin{}, nil
	case models.RolePlayer, models.RoleVolunteer:
		return MemberLogin{role: role}, nil
	case "":
		return MemberLogin{}, nil
	default:
		return nil, apperr.Validation("Invalid role %q", role)
	}
}

// Login authenticates by unique code and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.UniqueUserID = strings.TrimSpace(in.UniqueUserID)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if in.UniqueUserID == "" {
		return nil, apperr.Validation("User ID is required.")
	}

	variant, err := s.variantFor(in.Role)
	if err != nil {
		return nil, err
	}
	if err := variant.check(in); err != nil {
		return nil, err
	}

	if err := s.limiter.Allow(ctx, in.UniqueUserID); err != nil {
		if errors.Is(err, ratelimit.ErrTooManyAttempts) {
			return nil, apperr.RateLimited("Too many login attempts. Please try again later.")
		}
		// fail open
		logrus.WithError(err).Warn("Login limiter unavailable.")
	}

	var person models.Person
	err = s.db.WithContext(ctx).Preload("Roles").Where("unique_user_id = ?", in.UniqueUserID).First(&person).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Account not found!")
	}
	if err != nil {
		return nil, fmt.Errorf("load person: %w", err)
	}

	if err := variant.verify(&person, in); err != nil {
		logrus.WithFields(logrus.Fields{"person_id": person.ID, "role": in.Role}).Info("Login rejected.")
		return nil, err
	}
	if person.AccountStatus == models.AccountSuspended {
		return nil, apperr.Auth("Account suspended. Please contact admin.")
	}

	token, err := s.tokens.Generate(person.ID, person.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	if err := s.limiter.Reset(ctx, in.UniqueUserID); err != nil {
		logrus.WithError(err).Debug("Could not reset login counter.")
	}

	logrus.WithField("person_id", person.ID).Info("Login successful.")
	return &LoginResult{Message: variant.message(), Person: &person, Token: token}, nil
}
