package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mgandara/pizzastore/internal/db"
)

var (
	ErrNotFound = errors.New("item not found")
	ErrBadField = errors.New("attribute is not editable")
)

type Repository interface {
	List(ctx context.Context, f Filter, sort Sort) ([]Item, error)
	GetByName(ctx context.Context, name string) (*Item, error)
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, it *Item) error
	SetField(ctx context.Context, name, field, value string) error
	Delete(ctx context.Context, name string) error
}

type GatewayRepo struct{ db db.DB }

func NewGatewayRepo(d db.DB) *GatewayRepo { return &GatewayRepo{db: d} }

const selectItem = `SELECT itemName, ingredients, typeOfItem, price::text, description FROM Items`

func (r *GatewayRepo) List(ctx context.Context, f Filter, sort Sort) ([]Item, error) {
	sql := selectItem
	var args []any
	switch {
	case f.Type != "":
		sql += ` WHERE typeOfItem = $1`
		args = append(args, f.Type)
	case f.MaxPrice != nil:
		sql += ` WHERE price BETWEEN 0 AND $1`
		args = append(args, f.MaxPrice.StringFixed(2))
	}
	switch sort {
	case SortPriceDesc:
		sql += ` ORDER BY price DESC`
	case SortPriceAsc:
		sql += ` ORDER BY price ASC`
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(rows))
	for _, rec := range rows {
		it, err := scan(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, nil
}

func (r *GatewayRepo) GetByName(ctx context.Context, name string) (*Item, error) {
	rows, err := r.db.Query(ctx, selectItem+` WHERE itemName = $1`, name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scan(rows[0])
}

func (r *GatewayRepo) Exists(ctx context.Context, name string) (bool, error) {
	n, err := r.db.Count(ctx, `SELECT itemName FROM Items WHERE itemName = $1`, name)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GatewayRepo) Create(ctx context.Context, it *Item) error {
	return r.db.Exec(ctx, `
		INSERT INTO Items (itemName, ingredients, typeOfItem, price, description)
		VALUES ($1,$2,$3,$4,$5)
	`, it.Name, it.Ingredients, it.Type, it.Price.StringFixed(2), it.Description)
}

func (r *GatewayRepo) SetField(ctx context.Context, name, field, value string) error {
	switch field {
	case FieldIngredients, FieldType, FieldPrice, FieldDescription:
	default:
		return ErrBadField
	}
	return r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE Items SET %s = $1 WHERE itemName = $2`, field),
		value, name)
}

// Delete removes the item unconditionally. There is no existence check
// and no protection for order lines that still reference the name.
func (r *GatewayRepo) Delete(ctx context.Context, name string) error {
	return r.db.Exec(ctx, `DELETE FROM Items WHERE itemName = $1`, name)
}

func scan(rec []string) (*Item, error) {
	price, err := decimal.NewFromString(rec[3])
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", rec[3], err)
	}
	return &Item{
		Name:        rec[0],
		Ingredients: rec[1],
		Type:        rec[2],
		Price:       price,
		Description: rec[4],
	}, nil
}
