package repo

import (
	"context"

	"github.com/pgdesk/pgdesk/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

type UsersQueryer interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username, authSource string) (*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
