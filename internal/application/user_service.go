package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

// UserService covers profile reads and edits plus the administrative user routes.
// Cache is the public poll listing, which embeds creator names and is
// invalidated when a creator is renamed or removed.
type UserService struct {
	Users  repo.UserRepository
	Cache  PollCache
	Logger logrus.FieldLogger
}

func NewUserService(users repo.UserRepository, cache PollCache, logger logrus.FieldLogger) *UserService {
	return &UserService{Users: users, Cache: cache, Logger: logger}
}

// CreateUserInput is shared by signup and the administrative create.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and inserts the user. The unique email
// constraint is the only duplicate check.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "Failed to hash password", Err: err}
	}
	u := &entity.User{
		Email:     NormalizeEmail(in.Email),
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     nonBlank(in.Phone),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if repo.KindOf(err) == repo.KindConflict {
			return nil, ErrEmailTaken
		}
		s.logStoreError("create user", err, logrus.Fields{"email": u.Email})
		return nil, fromStore(err, nil)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		s.logStoreError("list users", err, nil)
		return nil, fromStore(err, nil)
	}
	return users, nil
}

// Update applies only the supplied fields; an empty patch returns the current row.
func (s *UserService) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	// Blank names are ignored rather than stored.
	patch.FirstName = nonBlank(patch.FirstName)
	patch.LastName = nonBlank(patch.LastName)
	patch.Phone = trimPtr(patch.Phone)
	if patch.Empty() {
		return s.Get(ctx, id)
	}
	u, err := s.Users.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStore(err, ErrUserNotFound)
	}
	if patch.FirstName != nil || patch.LastName != nil {
		s.invalidatePolls(ctx)
	}
	return u, nil
}

// Delete succeeds when the user is already gone. The user's polls, options
// and votes go with it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil && repo.KindOf(err) != repo.KindNotFound {
		s.logStoreError("delete user", err, logrus.Fields{"user_id": id})
		return fromStore(err, nil)
	}
	s.invalidatePolls(ctx)
	return nil
}

// UpdateAs is Update on behalf of callerID, who may only change their own account.
func (s *UserService) UpdateAs(ctx context.Context, callerID, id string, patch entity.UserPatch) (*entity.User, error) {
	if callerID != id {
		return nil, ErrNotAccountOwner
	}
	return s.Update(ctx, id, patch)
}

// DeleteAs is Delete on behalf of callerID, who may only remove their own account.
func (s *UserService) DeleteAs(ctx context.Context, callerID, id string) error {
	if callerID != id {
		return ErrNotAccountOwner
	}
	return s.Delete(ctx, id)
}

func (s *UserService) invalidatePolls(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}

func (s *UserService) logStoreError(msg string, err error, fields logrus.Fields) {
	if s.Logger != nil {
		helpers.LogError(s.Logger, msg, err, fields)
	}
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func nonBlank(p *string) *string {
	p = trimPtr(p)
	if p == nil || *p == "" {
		return nil
	}
	return p
}
