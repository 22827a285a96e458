package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgandara/pizzastore/internal/db"
)

type fakeDB struct {
	sqls     []string
	args     [][]any
	results  [][][]string
	execErr  error
	txBegun  int
	txFailed int
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) error {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return f.execErr
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) ([][]string, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	if len(f.results) == 0 {
		return nil, nil
	}
	rows := f.results[0]
	f.results = f.results[1:]
	return rows, nil
}

func (f *fakeDB) Count(ctx context.Context, sql string, args ...any) (int, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return 0, nil
}

func (f *fakeDB) InTx(ctx context.Context, fn func(db.DB) error) error {
	f.txBegun++
	if err := fn(f); err != nil {
		f.txFailed++
		return err
	}
	return nil
}

func TestCreateInsertsHeaderAndLinesInOneTx(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{{{"17"}}}}
	repo := NewGatewayRepo(fdb)

	o := &Order{
		Login:   "alice",
		StoreID: 3,
		Total:   decimal.RequireFromString("22.50"),
		Status:  StatusIncomplete,
	}
	lines := []Line{
		{ItemName: "Margherita", Quantity: 2},
		{ItemName: "Cola", Quantity: 3},
	}

	id, err := repo.Create(context.Background(), o, lines)
	require.NoError(t, err)
	assert.Equal(t, 17, id)
	assert.Equal(t, 1, fdb.txBegun)

	// one header insert plus one insert per cart line
	require.Len(t, fdb.sqls, 3)
	assert.Contains(t, fdb.sqls[0], "INSERT INTO FoodOrder")
	assert.Contains(t, fdb.sqls[0], "RETURNING orderID")
	assert.Equal(t, []any{"alice", 3, "22.50", "incomplete"}, fdb.args[0])
	assert.Contains(t, fdb.sqls[1], "INSERT INTO ItemsInOrder")
	assert.Equal(t, []any{17, "Margherita", 2}, fdb.args[1])
	assert.Equal(t, []any{17, "Cola", 3}, fdb.args[2])
}

func TestCreateRollsBackWhenALineFails(t *testing.T) {
	fdb := &fakeDB{
		results: [][][]string{{{"17"}}},
		execErr: errors.New("constraint violation"),
	}
	repo := NewGatewayRepo(fdb)

	o := &Order{Login: "alice", StoreID: 3, Total: decimal.Zero, Status: StatusIncomplete}
	_, err := repo.Create(context.Background(), o, []Line{{ItemName: "Margherita", Quantity: 1}})
	require.Error(t, err)
	assert.Equal(t, 1, fdb.txFailed)
}

func TestListRecentLimitsAndOrders(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{nil}}
	repo := NewGatewayRepo(fdb)

	_, err := repo.ListRecent(context.Background(), "alice", 5)
	require.NoError(t, err)
	assert.Contains(t, fdb.sqls[0], "ORDER BY orderTimestamp DESC")
	assert.Contains(t, fdb.sqls[0], "LIMIT $2")
	assert.Equal(t, []any{"alice", 5}, fdb.args[0])
}

func TestGetForUserScopesToLogin(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{nil}}
	repo := NewGatewayRepo(fdb)

	_, err := repo.GetForUser(context.Background(), 8, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, fdb.sqls[0], "orderID = $1 AND login = $2")
}

func TestGetParsesRow(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{{
		{"17", "alice", "3", "22.50", "2026-09-01 12:30:00", "incomplete"},
	}}}
	repo := NewGatewayRepo(fdb)

	o, err := repo.Get(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, 17, o.ID)
	assert.Equal(t, "alice", o.Login)
	assert.Equal(t, 3, o.StoreID)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("22.50")))
	assert.Equal(t, StatusIncomplete, o.Status)
}

func TestSetStatus(t *testing.T) {
	fdb := &fakeDB{}
	repo := NewGatewayRepo(fdb)

	require.NoError(t, repo.SetStatus(context.Background(), 17, StatusComplete))
	require.Len(t, fdb.sqls, 1)
	assert.True(t, strings.Contains(fdb.sqls[0], "UPDATE FoodOrder SET orderStatus"))
	assert.Equal(t, []any{"complete", 17}, fdb.args[0])
}
