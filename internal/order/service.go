package order

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mgandara/pizzastore/internal/user"
)

const recentLimit = 5

// PriceLookup resolves an item's current unit price. The found flag is
// false for unknown item names.
type PriceLookup interface {
	Price(ctx context.Context, itemName string) (decimal.Decimal, bool, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, login string, roles ...user.Role) (bool, error)
}

type Service struct {
	repo   Repository
	prices PriceLookup
	auth   Authorizer
	log    *logrus.Logger
}

func NewService(repo Repository, prices PriceLookup, auth Authorizer, log *logrus.Logger) *Service {
	return &Service{repo: repo, prices: prices, auth: auth, log: log}
}

// Total prices a cart with a fresh lookup per line. A line naming an
// unknown item contributes zero and is otherwise ignored.
func (s *Service) Total(ctx context.Context, cart Cart) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ln := range cart {
		price, found, err := s.prices.Price(ctx, ln.ItemName)
		if err != nil {
			return decimal.Zero, err
		}
		if !found {
			s.log.WithField("item", ln.ItemName).Warn("cart line for unknown item skipped")
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total, nil
}

// Place persists the cart as a new incomplete order and returns it with
// the generated ID and computed total filled in.
func (s *Service) Place(ctx context.Context, login string, storeID int, cart Cart) (*Order, error) {
	total, err := s.Total(ctx, cart)
	if err != nil {
		return nil, err
	}
	o := &Order{
		Login:   login,
		StoreID: storeID,
		Total:   total,
		Status:  StatusIncomplete,
	}
	id, err := s.repo.Create(ctx, o, cart)
	if err != nil {
		return nil, err
	}
	o.ID = id
	s.log.WithFields(logrus.Fields{
		"login": login, "order": id, "total": total.StringFixed(2),
	}).Info("order placed")
	return o, nil
}

func (s *Service) History(ctx context.Context, login string) ([]Order, error) {
	return s.repo.ListByUser(ctx, login)
}

func (s *Service) Recent(ctx context.Context, login string) ([]Order, error) {
	return s.repo.ListRecent(ctx, login, recentLimit)
}

// Info returns an order with its lines. Drivers and managers may look at
// any order; a customer only sees their own.
func (s *Service) Info(ctx context.Context, login string, id int) (*Order, []Line, error) {
	elevated, err := s.auth.Authorize(ctx, login, user.RoleDriver, user.RoleManager)
	if err != nil {
		return nil, nil, err
	}
	var o *Order
	if elevated {
		o, err = s.repo.Get(ctx, id)
	} else {
		o, err = s.repo.GetForUser(ctx, id, login)
	}
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.repo.Lines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return o, lines, nil
}

// UpdateStatus moves an order to a new status. Managers may set any
// valid status; drivers may only advance an order one step at a time;
// everyone else is denied.
func (s *Service) UpdateStatus(ctx context.Context, actor string, id int, to Status) error {
	role, err := s.actorRole(ctx, actor)
	if err != nil {
		return err
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := CanTransition(o.Status, to, role); err != nil {
		return err
	}
	if err := s.repo.SetStatus(ctx, id, to); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"actor": actor, "order": id, "from": o.Status, "to": to,
	}).Info("order status updated")
	return nil
}

func (s *Service) actorRole(ctx context.Context, actor string) (user.Role, error) {
	for _, role := range []user.Role{user.RoleManager, user.RoleDriver} {
		ok, err := s.auth.Authorize(ctx, actor, role)
		if err != nil {
			return "", err
		}
		if ok {
			return role, nil
		}
	}
	return "", user.ErrDenied
}
