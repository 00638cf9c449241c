package verification

import (
	"context"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/profile"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/google/uuid"
)

// StatusPending is the status every new verification log starts in.
const StatusPending = "PENDING"

type Repo interface {
	// Create appends a pending verification log and moves the owning profile
	// to PENDING in the same write.
	Create(ctx context.Context, userID, documentType string) (model.VerificationLog, error)
	// FindByUser returns the user's submissions in append order.
	FindByUser(ctx context.Context, userID string) ([]model.VerificationLog, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) Create(ctx context.Context, userID, documentType string) (model.VerificationLog, error) {
	log := model.VerificationLog{
		ID:           uuid.NewString(),
		UserID:       userID,
		DocumentType: documentType,
		Status:       StatusPending,
		Timestamp:    time.Now().UTC(),
	}
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		ds.VerificationLogs = append(ds.VerificationLogs, log)
		profile.MarkPending(ds, userID)
		return nil
	})
	if err != nil {
		return model.VerificationLog{}, err
	}
	return log, nil
}

func (r *repo) FindByUser(ctx context.Context, userID string) ([]model.VerificationLog, error) {
	var out []model.VerificationLog
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, l := range ds.VerificationLogs {
			if l.UserID == userID {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}
