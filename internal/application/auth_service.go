package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/validation"
)

// AuthService implements signup, signin and the token-protected account routes.
type AuthService struct {
	Users  *UserService
	JWT    *helpers.JWTManager
	Mail   *Notifier
	Logger logrus.FieldLogger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users *UserService, jwt *helpers.JWTManager, mail *Notifier, logger logrus.FieldLogger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Mail: mail, Logger: logger}
}

// Session is a user together with a freshly issued token.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.Issue(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, &Error{Kind: KindInternal, Message: "Failed to issue token", Err: err}
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// Signup creates the account and signs the new user in.
func (s *AuthService) Signup(ctx context.Context, in CreateUserInput) (*Session, error) {
	u, err := s.Users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	sess, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Mail.Welcome(ctx, u)
	return sess, nil
}

// dummy returns a hash compared against when the email is unknown, so both
// failure paths pay for one bcrypt comparison.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := helpers.HashPassword("votiy-unknown-account")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// Signin verifies the credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if repo.KindOf(err) != repo.KindNotFound {
			return nil, fromStore(err, nil)
		}
		helpers.CompareHashAndPassword(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Profile returns the token's user; it may have been deleted since the token was issued.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.Get(ctx, userID)
}

// Refresh issues a new token with a fresh expiry for a user that still exists.
func (s *AuthService) Refresh(ctx context.Context, userID string) (*Session, error) {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// ChangePassword replaces the stored hash. The current password is checked
// before the new one is validated. Existing tokens stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string, meta RequestMeta) error {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrWrongPassword
	}
	if len(next) < validation.MinPasswordLen {
		return validationError("Validation failed", map[string]string{
			"newPassword": fmt.Sprintf("must be at least %d characters long", validation.MinPasswordLen),
		})
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return &Error{Kind: KindInternal, Message: "Failed to hash password", Err: err}
	}
	if err := s.Users.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return fromStore(err, ErrUserNotFound)
	}
	s.Mail.PasswordChanged(ctx, u, meta)
	return nil
}
