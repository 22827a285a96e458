package item

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mgandara/pizzastore/internal/user"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) List(ctx context.Context, f Filter, sort Sort) ([]Item, error) {
	args := m.Called(ctx, f, sort)
	its, _ := args.Get(0).([]Item)
	return its, args.Error(1)
}

func (m *MockRepo) GetByName(ctx context.Context, name string) (*Item, error) {
	args := m.Called(ctx, name)
	it, _ := args.Get(0).(*Item)
	return it, args.Error(1)
}

func (m *MockRepo) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) Create(ctx context.Context, it *Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepo) SetField(ctx context.Context, name, field, value string) error {
	args := m.Called(ctx, name, field, value)
	return args.Error(0)
}

func (m *MockRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type roleTable map[string]user.Role

func (r roleTable) Authorize(ctx context.Context, login string, roles ...user.Role) (bool, error) {
	for _, role := range roles {
		if r[login] == role {
			return true, nil
		}
	}
	return false, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var auth = roleTable{"mia": user.RoleManager, "carol": user.RoleCustomer}

func TestAddRequiresManager(t *testing.T) {
	ctx := context.Background()
	it := Item{Name: "Calzone", Ingredients: "dough, cheese", Type: TypeEntree,
		Price: decimal.RequireFromString("7.50")}

	t.Run("manager may add", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("Create", ctx, &it).Return(nil)
		svc := NewService(repo, auth, quietLogger())

		require.NoError(t, svc.Add(ctx, "mia", it))
		repo.AssertExpectations(t)
	})

	t.Run("customer is denied without mutation", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo, auth, quietLogger())

		assert.ErrorIs(t, svc.Add(ctx, "carol", it), user.ErrDenied)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRemoveRequiresManager(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepo)
	svc := NewService(repo, auth, quietLogger())
	assert.ErrorIs(t, svc.Remove(ctx, "carol", "Margherita"), user.ErrDenied)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", ctx, "Margherita").Return(nil)
	require.NoError(t, svc.Remove(ctx, "mia", "Margherita"))
}

func TestUpdateFieldRequiresManager(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepo)
	svc := NewService(repo, auth, quietLogger())
	assert.ErrorIs(t, svc.UpdateField(ctx, "carol", "Margherita", FieldPrice, "10.00"), user.ErrDenied)

	repo.On("SetField", ctx, "Margherita", FieldPrice, "10.00").Return(nil)
	require.NoError(t, svc.UpdateField(ctx, "mia", "Margherita", FieldPrice, "10.00"))
}

func TestPrice(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	repo.On("GetByName", ctx, "Margherita").Return(
		&Item{Name: "Margherita", Price: decimal.RequireFromString("9.00")}, nil)
	repo.On("GetByName", ctx, "Unicorn Pizza").Return(nil, ErrNotFound)
	svc := NewService(repo, auth, quietLogger())

	price, found, err := svc.Price(ctx, "Margherita")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9.00", price.StringFixed(2))

	_, found, err = svc.Price(ctx, "Unicorn Pizza")
	require.NoError(t, err)
	assert.False(t, found)
}
