package item

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgandara/pizzastore/internal/db"
)

// fakeDB records every statement and serves scripted results.
type fakeDB struct {
	sqls    []string
	args    [][]any
	results [][][]string
	counts  []int
	err     error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) error {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) ([][]string, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
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
	if f.err != nil {
		return 0, f.err
	}
	if len(f.counts) == 0 {
		return 0, nil
	}
	n := f.counts[0]
	f.counts = f.counts[1:]
	return n, nil
}

func (f *fakeDB) InTx(ctx context.Context, fn func(db.DB) error) error {
	return fn(f)
}

func margheritaRow() []string {
	return []string{"Margherita", "tomato, mozzarella, basil", "entree", "9.00", "the classic"}
}

func TestListByType(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{{margheritaRow()}}}
	repo := NewGatewayRepo(fdb)

	items, err := repo.List(context.Background(), Filter{Type: TypeEntree}, SortNone)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("9.00")))

	assert.Contains(t, fdb.sqls[0], "WHERE typeOfItem = $1")
	assert.Equal(t, []any{"entree"}, fdb.args[0])
}

func TestListByPriceCeiling(t *testing.T) {
	max := decimal.RequireFromString("5.00")
	fdb := &fakeDB{results: [][][]string{nil}}
	repo := NewGatewayRepo(fdb)

	items, err := repo.List(context.Background(), Filter{MaxPrice: &max}, SortNone)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Contains(t, fdb.sqls[0], "WHERE price BETWEEN 0 AND $1")
	assert.Equal(t, []any{"5.00"}, fdb.args[0])
}

func TestListSortClauses(t *testing.T) {
	cases := []struct {
		sort Sort
		want string
	}{
		{SortPriceDesc, "ORDER BY price DESC"},
		{SortPriceAsc, "ORDER BY price ASC"},
	}
	for _, tc := range cases {
		fdb := &fakeDB{results: [][][]string{nil}}
		repo := NewGatewayRepo(fdb)
		_, err := repo.List(context.Background(), Filter{}, tc.sort)
		require.NoError(t, err)
		assert.Contains(t, fdb.sqls[0], tc.want)
	}
}

func TestListUnsortedHasNoOrderBy(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{nil}}
	repo := NewGatewayRepo(fdb)
	_, err := repo.List(context.Background(), Filter{}, SortNone)
	require.NoError(t, err)
	assert.NotContains(t, fdb.sqls[0], "ORDER BY")
}

func TestGetByNameNotFound(t *testing.T) {
	fdb := &fakeDB{results: [][][]string{nil}}
	repo := NewGatewayRepo(fdb)

	_, err := repo.GetByName(context.Background(), "Calzone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetFieldRejectsUnknownColumn(t *testing.T) {
	fdb := &fakeDB{}
	repo := NewGatewayRepo(fdb)

	err := repo.SetField(context.Background(), "Margherita", "itemName; DROP TABLE Items", "x")
	assert.ErrorIs(t, err, ErrBadField)
	assert.Empty(t, fdb.sqls)
}

func TestDeleteIsUnconditional(t *testing.T) {
	fdb := &fakeDB{}
	repo := NewGatewayRepo(fdb)

	require.NoError(t, repo.Delete(context.Background(), "Margherita"))
	require.Len(t, fdb.sqls, 1)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(fdb.sqls[0]), "DELETE FROM Items"))
	assert.Equal(t, []any{"Margherita"}, fdb.args[0])
}
