package store

import (
	"context"

	"github.com/mgandara/pizzastore/internal/db"
)

// Store rows are read-only in this application; they are listed so a
// customer can pick one while placing an order.
type Store struct {
	ID          string
	Address     string
	City        string
	State       string
	ReviewScore string
}

type Repository interface {
	ListOpen(ctx context.Context) ([]Store, error)
}

type GatewayRepo struct{ db db.DB }

func NewGatewayRepo(d db.DB) *GatewayRepo { return &GatewayRepo{db: d} }

func (r *GatewayRepo) ListOpen(ctx context.Context) ([]Store, error) {
	rows, err := r.db.Query(ctx, `
		SELECT storeID, address, city, state, reviewScore::text
		FROM Store WHERE isOpen = 'yes'
	`)
	if err != nil {
		return nil, err
	}
	out := make([]Store, 0, len(rows))
	for _, rec := range rows {
		out = append(out, Store{
			ID:          rec[0],
			Address:     rec[1],
			City:        rec[2],
			State:       rec[3],
			ReviewScore: rec[4],
		})
	}
	return out, nil
}
