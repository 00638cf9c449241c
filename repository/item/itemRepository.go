package item

import (
	"context"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/google/uuid"
)

// Update carries a shallow field merge; nil fields are left untouched.
type Update struct {
	Title            *string
	Description      *string
	Category         *model.ItemCategory
	DailyPrice       *float64
	ReplacementValue *float64
	MinRentDays      *int
	Images           *[]string
	IsActive         *bool
}

type Repo interface {
	// Create inserts a new listing at the front of the catalog. ID, activity
	// flag and timestamp are assigned here regardless of the input.
	Create(ctx context.Context, it model.Item) (model.Item, error)
	FindAll(ctx context.Context) ([]model.Item, error)
	FindByID(ctx context.Context, id string) (*model.Item, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Item, error)
	Update(ctx context.Context, id string, upd Update) (*model.Item, error)
	Deactivate(ctx context.Context, id string) (*model.Item, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) Create(ctx context.Context, it model.Item) (model.Item, error) {
	it.ID = uuid.NewString()
	it.IsActive = true
	it.CreatedAt = time.Now().UTC()
	if it.Images == nil {
		it.Images = []string{}
	}
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		// most-recent-first ordering
		ds.Items = append([]model.Item{it}, ds.Items...)
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// FindAll returns active listings only; delisted items stay in the dataset
// but disappear from browsing.
func (r *repo) FindAll(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, it := range ds.Items {
			if it.IsActive {
				out = append(out, it)
			}
		}
		return nil
	})
	return out, err
}

func (r *repo) FindByID(ctx context.Context, id string) (*model.Item, error) {
	var found *model.Item
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		if it := findIn(ds, id); it != nil {
			cp := *it
			found = &cp
		}
		return nil
	})
	return found, err
}

// FindByOwner returns the owner's items regardless of the active flag, so a
// lessor can see and relist delisted gear.
func (r *repo) FindByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	var out []model.Item
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, it := range ds.Items {
			if it.OwnerID == ownerID {
				out = append(out, it)
			}
		}
		return nil
	})
	return out, err
}

func (r *repo) Update(ctx context.Context, id string, upd Update) (*model.Item, error) {
	var updated *model.Item
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		it := findIn(ds, id)
		if it == nil {
			return nil
		}
		if upd.Title != nil {
			it.Title = *upd.Title
		}
		if upd.Description != nil {
			it.Description = *upd.Description
		}
		if upd.Category != nil {
			it.Category = *upd.Category
		}
		if upd.DailyPrice != nil {
			it.DailyPrice = *upd.DailyPrice
		}
		if upd.ReplacementValue != nil {
			it.ReplacementValue = *upd.ReplacementValue
		}
		if upd.MinRentDays != nil {
			it.MinRentDays = *upd.MinRentDays
		}
		if upd.Images != nil {
			it.Images = *upd.Images
		}
		if upd.IsActive != nil {
			it.IsActive = *upd.IsActive
		}
		cp := *it
		updated = &cp
		return nil
	})
	return updated, err
}

func (r *repo) Deactivate(ctx context.Context, id string) (*model.Item, error) {
	off := false
	return r.Update(ctx, id, Update{IsActive: &off})
}

func findIn(ds *model.Dataset, id string) *model.Item {
	for i := range ds.Items {
		if ds.Items[i].ID == id {
			return &ds.Items[i]
		}
	}
	return nil
}
