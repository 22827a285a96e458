package user

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("username/password is wrong")
	ErrDenied             = errors.New("you do not have permission")
)

type Service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Login checks credentials by exact match and returns the login that
// becomes the session identity.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.repo.CredentialsMatch(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	s.log.WithField("login", username).Info("user logged in")
	return username, nil
}

// Register creates a new account. Self-registration always produces a
// customer; roles are only changed later by a manager.
func (s *Service) Register(ctx context.Context, username, password, phone string) error {
	u := &User{
		Login:    username,
		Password: password,
		Role:     RoleCustomer,
		Phone:    phone,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}
	s.log.WithField("login", username).Info("user registered")
	return nil
}

// Authorize reports whether login's stored role is one of roles.
func (s *Service) Authorize(ctx context.Context, login string, roles ...Role) (bool, error) {
	for _, role := range roles {
		ok, err := s.repo.HasRole(ctx, login, role)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) Profile(ctx context.Context, login string) (*User, error) {
	return s.repo.GetByLogin(ctx, login)
}

// EditOwnField updates one of the fields a user may change on their own
// profile. The value is written as given; there is no validation beyond
// what the prompter already enforced.
func (s *Service) EditOwnField(ctx context.Context, login, field, value string) error {
	switch field {
	case FieldFavoriteItem, FieldPhone, FieldPassword:
	default:
		return ErrBadField
	}
	return s.repo.SetField(ctx, login, field, value)
}

// EditUserField lets a manager overwrite any field of any user, login and
// role included. It returns the actor's session identity afterwards: when
// a manager renames their own login the new name becomes the session
// identity, renaming anyone else leaves it untouched.
func (s *Service) EditUserField(ctx context.Context, actor, target, field, value string) (string, error) {
	ok, err := s.Authorize(ctx, actor, RoleManager)
	if err != nil {
		return actor, err
	}
	if !ok {
		return actor, ErrDenied
	}
	if err := s.repo.SetField(ctx, target, field, value); err != nil {
		return actor, err
	}
	s.log.WithFields(logrus.Fields{"actor": actor, "target": target, "field": field}).Info("user updated")
	if actor == target && field == FieldLogin {
		return value, nil
	}
	return actor, nil
}

// TargetExists backs the update-user prompt loop, which keeps asking for
// a login until it names a real user.
func (s *Service) TargetExists(ctx context.Context, login string) (bool, error) {
	return s.repo.Exists(ctx, login)
}
