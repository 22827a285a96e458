package item

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mgandara/pizzastore/internal/user"
)

// Authorizer resolves whether a login holds one of the given roles.
type Authorizer interface {
	Authorize(ctx context.Context, login string, roles ...user.Role) (bool, error)
}

type Service struct {
	repo Repository
	auth Authorizer
	log  *logrus.Logger
}

func NewService(repo Repository, auth Authorizer, log *logrus.Logger) *Service {
	return &Service{repo: repo, auth: auth, log: log}
}

// List returns the catalog under one filter dimension and one ordering.
// The browse sub-loop calls it again with a different sort but the same
// filter, so re-sorting never re-prompts.
func (s *Service) List(ctx context.Context, f Filter, sort Sort) ([]Item, error) {
	return s.repo.List(ctx, f, sort)
}

func (s *Service) Get(ctx context.Context, name string) (*Item, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	return s.repo.Exists(ctx, name)
}

// Price reports an item's current unit price, with found=false for a
// name that is not on the menu.
func (s *Service) Price(ctx context.Context, name string) (decimal.Decimal, bool, error) {
	it, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return it.Price, true, nil
}

func (s *Service) Add(ctx context.Context, actor string, it Item) error {
	if err := s.requireManager(ctx, actor); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &it); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"actor": actor, "item": it.Name}).Info("item added")
	return nil
}

func (s *Service) Remove(ctx context.Context, actor, name string) error {
	if err := s.requireManager(ctx, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"actor": actor, "item": name}).Info("item removed")
	return nil
}

func (s *Service) UpdateField(ctx context.Context, actor, name, field, value string) error {
	if err := s.requireManager(ctx, actor); err != nil {
		return err
	}
	return s.repo.SetField(ctx, name, field, value)
}

func (s *Service) requireManager(ctx context.Context, actor string) error {
	ok, err := s.auth.Authorize(ctx, actor, user.RoleManager)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrDenied
	}
	return nil
}
