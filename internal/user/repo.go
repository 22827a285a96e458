package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgandara/pizzastore/internal/db"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrBadField      = errors.New("field is not editable")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByLogin(ctx context.Context, login string) (*User, error)
	CredentialsMatch(ctx context.Context, login, password string) (bool, error)
	HasRole(ctx context.Context, login string, role Role) (bool, error)
	Exists(ctx context.Context, login string) (bool, error)
	SetField(ctx context.Context, login, field, value string) error
}

type GatewayRepo struct{ db db.DB }

func NewGatewayRepo(d db.DB) *GatewayRepo { return &GatewayRepo{db: d} }

func (r *GatewayRepo) Create(ctx context.Context, u *User) error {
	err := r.db.Exec(ctx, `
		INSERT INTO Users (login, password, role, favoriteItems, phoneNum)
		VALUES ($1,$2,$3,$4,$5)
	`, u.Login, u.Password, string(u.Role), u.FavoriteItem, u.Phone)
	if err != nil {
		// login is the primary key; the practical failure here is a duplicate
		return ErrAlreadyExists
	}
	return nil
}

func (r *GatewayRepo) GetByLogin(ctx context.Context, login string) (*User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT login, password, role, favoriteItems, phoneNum
		FROM Users WHERE login = $1
	`, login)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	rec := rows[0]
	return &User{
		Login:        rec[0],
		Password:     rec[1],
		Role:         Role(rec[2]),
		FavoriteItem: rec[3],
		Phone:        rec[4],
	}, nil
}

func (r *GatewayRepo) CredentialsMatch(ctx context.Context, login, password string) (bool, error) {
	n, err := r.db.Count(ctx, `
		SELECT login FROM Users WHERE login = $1 AND password = $2
	`, login, password)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GatewayRepo) HasRole(ctx context.Context, login string, role Role) (bool, error) {
	n, err := r.db.Count(ctx, `
		SELECT login FROM Users WHERE login = $1 AND role = $2
	`, login, string(role))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GatewayRepo) Exists(ctx context.Context, login string) (bool, error) {
	n, err := r.db.Count(ctx, `SELECT login FROM Users WHERE login = $1`, login)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GatewayRepo) SetField(ctx context.Context, login, field, value string) error {
	switch field {
	case FieldFavoriteItem, FieldPhone, FieldPassword, FieldLogin, FieldRole:
	default:
		return ErrBadField
	}
	return r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE Users SET %s = $1 WHERE login = $2`, field),
		value, login)
}
