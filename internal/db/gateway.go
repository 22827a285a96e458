package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// DB is the boundary between the interactive flows and the relational
// engine. Every value reaches the engine as a bound parameter, never as
// text spliced into the statement. Query renders each column as text,
// which is all the menu flows need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) ([][]string, error)
	Count(ctx context.Context, sql string, args ...any) (int, error)
	InTx(ctx context.Context, fn func(DB) error) error
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type core struct {
	q   pgxQuerier
	log *logrus.Logger
}

// Gateway wraps a single connection. No pooling, no retry: the one
// session owns the one connection for its whole lifetime.
type Gateway struct {
	core
	conn *pgx.Conn
}

// Connect opens the single connection the session will use. A failure
// here is fatal to the caller; there is no retry.
func Connect(ctx context.Context, dsn string, log *logrus.Logger) (*Gateway, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Gateway{core: core{q: conn, log: log}, conn: conn}, nil
}

func (g *Gateway) Close(ctx context.Context) error {
	return g.conn.Close(ctx)
}

// InTx runs fn with every statement inside one transaction, rolling back
// if fn fails. Multi-row flows (order placement) get all-or-nothing
// behavior this way.
func (g *Gateway) InTx(ctx context.Context, fn func(DB) error) error {
	tx, err := g.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	txc := &core{q: tx, log: g.log}
	if err := fn(txc); err != nil {
		if e := tx.Rollback(ctx); e != nil {
			g.log.WithError(e).Error("rollback failed")
		}
		return err
	}
	return tx.Commit(ctx)
}

// InTx on a core already inside a transaction just joins it.
func (c *core) InTx(ctx context.Context, fn func(DB) error) error {
	return fn(c)
}

func (c *core) Exec(ctx context.Context, sql string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.q.Exec(ctx, sql, args...); err != nil {
		c.log.WithError(err).WithField("sql", sql).Debug("exec failed")
		return err
	}
	return nil
}

func (c *core) Query(ctx context.Context, sql string, args ...any) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := c.q.Query(ctx, sql, args...)
	if err != nil {
		c.log.WithError(err).WithField("sql", sql).Debug("query failed")
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = render(v)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (c *core) Count(ctx context.Context, sql string, args ...any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := c.q.Query(ctx, sql, args...)
	if err != nil {
		c.log.WithError(err).WithField("sql", sql).Debug("count query failed")
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

// render turns a column value into its textual form. Repos cast NUMERIC
// and timestamp columns to ::text in the statement, so the common cases
// here are strings, ints and nils.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
