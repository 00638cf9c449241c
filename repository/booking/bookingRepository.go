package booking

import (
	"context"
	"sort"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/store"
)

type Repo interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// FindByUser returns bookings where the user is renter or owner, newest
	// first.
	FindByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var found *model.Booking
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		if b := Find(ds, id); b != nil {
			cp := *b
			found = &cp
		}
		return nil
	})
	return found, err
}

func (r *repo) FindByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	var out []model.Booking
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, b := range ds.Bookings {
			if b.RenterID == userID || b.OwnerID == userID {
				out = append(out, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Find locates a booking inside an open dataset update. The returned pointer
// aliases the dataset slice so callers can mutate in place.
func Find(ds *model.Dataset, id string) *model.Booking {
	for i := range ds.Bookings {
		if ds.Bookings[i].ID == id {
			return &ds.Bookings[i]
		}
	}
	return nil
}
