package profile

import (
	"context"
	"errors"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/store"
)

// ErrInvalidKycTransition is returned when a status change does not follow
// the verification graph.
var ErrInvalidKycTransition = errors.New("invalid kyc transition")

// kycNext encodes UNVERIFIED→PENDING→{VERIFIED,REJECTED}, with
// REJECTED→UNVERIFIED allowed so a user can retry.
var kycNext = map[model.KycStatus][]model.KycStatus{
	model.KycUnverified: {model.KycPending},
	model.KycPending:    {model.KycVerified, model.KycRejected},
	model.KycRejected:   {model.KycUnverified},
}

// Update carries a shallow field merge; nil fields are left untouched.
type Update struct {
	FullName  *string
	AvatarURL *string
	Bio       *string
}

type Repo interface {
	Create(ctx context.Context, userID, email, fullName string) (model.Profile, error)
	Find(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, upd Update) (*model.Profile, error)
	UpdateKycStatus(ctx context.Context, userID string, status model.KycStatus) (*model.Profile, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) Create(ctx context.Context, userID, email, fullName string) (model.Profile, error) {
	created := model.Profile{
		ID:        userID, // 1:1 with the user, never reassigned
		Email:     email,
		FullName:  fullName,
		KycStatus: model.KycUnverified,
		CreatedAt: time.Now().UTC(),
	}
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		ds.Profiles = append(ds.Profiles, created)
		return nil
	})
	if err != nil {
		return model.Profile{}, err
	}
	return created, nil
}

func (r *repo) Find(ctx context.Context, userID string) (*model.Profile, error) {
	var found *model.Profile
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		if p := findIn(ds, userID); p != nil {
			cp := *p
			found = &cp
		}
		return nil
	})
	return found, err
}

func (r *repo) Update(ctx context.Context, userID string, upd Update) (*model.Profile, error) {
	var updated *model.Profile
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		p := findIn(ds, userID)
		if p == nil {
			return nil
		}
		if upd.FullName != nil {
			p.FullName = *upd.FullName
		}
		if upd.AvatarURL != nil {
			p.AvatarURL = *upd.AvatarURL
		}
		if upd.Bio != nil {
			p.Bio = *upd.Bio
		}
		cp := *p
		updated = &cp
		return nil
	})
	return updated, err
}

func (r *repo) UpdateKycStatus(ctx context.Context, userID string, status model.KycStatus) (*model.Profile, error) {
	var updated *model.Profile
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		p := findIn(ds, userID)
		if p == nil {
			return nil
		}
		if !allowed(p.KycStatus, status) {
			return ErrInvalidKycTransition
		}
		p.KycStatus = status
		cp := *p
		updated = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func allowed(from, to model.KycStatus) bool {
	for _, next := range kycNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

func findIn(ds *model.Dataset, userID string) *model.Profile {
	for i := range ds.Profiles {
		if ds.Profiles[i].ID == userID {
			return &ds.Profiles[i]
		}
	}
	return nil
}

// MarkPending forces a profile to PENDING inside an open dataset update.
// Used by the verification flow, which may resubmit straight from REJECTED.
func MarkPending(ds *model.Dataset, userID string) bool {
	p := findIn(ds, userID)
	if p == nil || p.KycStatus == model.KycVerified {
		return false
	}
	p.KycStatus = model.KycPending
	return true
}
