package user

import (
	"context"
	"errors"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned when the email already belongs to a user.
var ErrDuplicateEmail = errors.New("email already registered")

type Repo interface {
	Create(ctx context.Context, email, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) Create(ctx context.Context, email, passwordHash string) (model.User, error) {
	var created model.User
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		for _, u := range ds.Users {
			if u.Email == email {
				return ErrDuplicateEmail
			}
		}
		created = model.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: passwordHash,
			CreatedAt:    time.Now().UTC(),
		}
		ds.Users = append(ds.Users, created)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return created, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(ctx, func(u model.User) bool { return u.Email == email })
}

func (r *repo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.find(ctx, func(u model.User) bool { return u.ID == id })
}

func (r *repo) find(ctx context.Context, match func(model.User) bool) (*model.User, error) {
	var found *model.User
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for i := range ds.Users {
			if match(ds.Users[i]) {
				u := ds.Users[i]
				found = &u
				return nil
			}
		}
		return nil
	})
	return found, err
}
