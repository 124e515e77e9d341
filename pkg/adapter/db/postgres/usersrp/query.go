package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres"
	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"gorm.io/gorm"
)

type gUser struct {
	ID              int64      `gorm:"primaryKey"`
	Username        string     `gorm:"size:256;not null"`
	Email           string     `gorm:"size:256"`
	Password        string     `gorm:"size:256"`
	Active          bool       `gorm:"not null"`
	ConfirmedAt     *time.Time `gorm:"column:confirmed_at"`
	MasterpassCheck string     `gorm:"size:256;column:masterpass_check"`
	AuthSource      string     `gorm:"size:256;not null;column:auth_source"`
	FsUniquifier    string     `gorm:"size:64;not null;unique;column:fs_uniquifier"`
}

func (gu *gUser) TableName() string {
	return "user"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:              gu.ID,
		Username:        gu.Username,
		Email:           gu.Email,
		Password:        gu.Password,
		Active:          gu.Active,
		ConfirmedAt:     gu.ConfirmedAt,
		MasterpassCheck: gu.MasterpassCheck,
		AuthSource:      gu.AuthSource,
		FsUniquifier:    gu.FsUniquifier,
	}
}

func newGUser(u *model.User) *gUser {
	return &gUser{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Password:        u.Password,
		Active:          u.Active,
		ConfirmedAt:     u.ConfirmedAt,
		MasterpassCheck: u.MasterpassCheck,
		AuthSource:      u.AuthSource,
		FsUniquifier:    u.FsUniquifier,
	}
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.User, error) {
	gdb := q.GORM(ctx)
	var gus []gUser
	gdb.Order("id").Find(&gus)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	users := make([]model.User, 0, len(gus))
	for i := range gus {
		users = append(users, *gus[i].Model())
	}
	return users, nil
}

func GetByUsername[Q postgres.Queryer](ctx context.Context, q Q, username, authSource string) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	err := gdb.Where(
		"username=? AND auth_source=?", username, authSource,
	).Take(gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf(
			"no %q user with %q auth source", username, authSource,
		))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := newGUser(u)
	err := gdb.Create(gu).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, cerr.Conflict(fmt.Errorf(
			"user %q with %q auth source exists", u.Username, u.AuthSource,
		))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}
