package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mgandara/pizzastore/internal/db"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order, lines []Line) (int, error)
	ListByUser(ctx context.Context, login string) ([]Order, error)
	ListRecent(ctx context.Context, login string, limit int) ([]Order, error)
	Get(ctx context.Context, id int) (*Order, error)
	GetForUser(ctx context.Context, id int, login string) (*Order, error)
	Lines(ctx context.Context, id int) ([]Line, error)
	SetStatus(ctx context.Context, id int, st Status) error
}

type GatewayRepo struct{ db db.DB }

func NewGatewayRepo(d db.DB) *GatewayRepo { return &GatewayRepo{db: d} }

const selectOrder = `SELECT orderID, login, storeID, totalPrice::text, orderTimestamp::text, orderStatus FROM FoodOrder`

// Create inserts the order header and its lines inside one transaction,
// so a failed line insert leaves no half-written order behind. Returns
// the database-generated order ID.
func (r *GatewayRepo) Create(ctx context.Context, o *Order, lines []Line) (int, error) {
	var id int
	err := r.db.InTx(ctx, func(tx db.DB) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO FoodOrder (login, storeID, totalPrice, orderTimestamp, orderStatus)
			VALUES ($1,$2,$3,CURRENT_TIMESTAMP,$4)
			RETURNING orderID
		`, o.Login, o.StoreID, o.Total.StringFixed(2), string(o.Status))
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return errors.New("insert returned no orderID")
		}
		id, err = strconv.Atoi(rows[0][0])
		if err != nil {
			return fmt.Errorf("parse orderID %q: %w", rows[0][0], err)
		}
		for _, ln := range lines {
			if err := tx.Exec(ctx, `
				INSERT INTO ItemsInOrder (orderID, itemName, quantity)
				VALUES ($1,$2,$3)
			`, id, ln.ItemName, ln.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

func (r *GatewayRepo) ListByUser(ctx context.Context, login string) ([]Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+` WHERE login = $1`, login)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

func (r *GatewayRepo) ListRecent(ctx context.Context, login string, limit int) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		selectOrder+` WHERE login = $1 ORDER BY orderTimestamp DESC LIMIT $2`,
		login, limit)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

func (r *GatewayRepo) Get(ctx context.Context, id int) (*Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+` WHERE orderID = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scan(rows[0])
}

// GetForUser is the customer view: an order someone else placed is
// indistinguishable from one that does not exist.
func (r *GatewayRepo) GetForUser(ctx context.Context, id int, login string) (*Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+` WHERE orderID = $1 AND login = $2`, id, login)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scan(rows[0])
}

func (r *GatewayRepo) Lines(ctx context.Context, id int) ([]Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT itemName, quantity FROM ItemsInOrder WHERE orderID = $1`, id)
	if err != nil {
		return nil, err
	}
	out := make([]Line, 0, len(rows))
	for _, rec := range rows {
		qty, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", rec[1], err)
		}
		out = append(out, Line{ItemName: rec[0], Quantity: qty})
	}
	return out, nil
}

func (r *GatewayRepo) SetStatus(ctx context.Context, id int, st Status) error {
	return r.db.Exec(ctx,
		`UPDATE FoodOrder SET orderStatus = $1 WHERE orderID = $2`, string(st), id)
}

func scan(rec []string) (*Order, error) {
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return nil, fmt.Errorf("parse orderID %q: %w", rec[0], err)
	}
	storeID, err := strconv.Atoi(rec[2])
	if err != nil {
		return nil, fmt.Errorf("parse storeID %q: %w", rec[2], err)
	}
	total, err := decimal.NewFromString(rec[3])
	if err != nil {
		return nil, fmt.Errorf("parse totalPrice %q: %w", rec[3], err)
	}
	return &Order{
		ID:        id,
		Login:     rec[1],
		StoreID:   storeID,
		Total:     total,
		Timestamp: rec[4],
		Status:    Status(rec[5]),
	}, nil
}

func scanAll(rows [][]string) ([]Order, error) {
	out := make([]Order, 0, len(rows))
	for _, rec := range rows {
		o, err := scan(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}
