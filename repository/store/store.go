package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/util/database"
	"go.etcd.io/bbolt"
)

const (
	bucketName = "alugaki"
	datasetKey = "db_v1"
)

// Store holds the whole dataset as one serialized document in a single bolt
// key. Every mutation is a read-modify-write of the full document.
type Store struct {
	db  *database.DB
	log *slog.Logger
}

func New(db *database.DB, log *slog.Logger) (*Store, error) {
	s := &Store{db: db, log: log}
	err := db.Bolt.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return s, nil
}

// Load returns the current dataset with all pending migrations applied.
// A missing document starts empty; a document that fails to parse is replaced
// by a fresh empty one rather than surfacing an error. In both cases the
// migration pipeline reseeds the canonical fixtures.
func (s *Store) Load(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.Bolt.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(datasetKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds := model.EmptyDataset()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, ds); err != nil {
			// Availability over durability: start over from a valid empty
			// dataset instead of failing the caller.
			s.log.Warn("dataset corrupted, resetting", "err", err)
			ds = model.EmptyDataset()
		}
	}

	if Migrate(ds) {
		if err := s.Save(ctx, ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Save replaces the persisted document with ds. The write is a single bolt
// transaction; readers never see a partial dataset.
func (s *Store) Save(ctx context.Context, ds *model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return s.db.Bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(datasetKey), payload)
	})
}

// View runs fn against the current dataset without persisting anything.
func (s *Store) View(ctx context.Context, fn func(ds *model.Dataset) error) error {
	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ds)
}

// Update runs fn against the current dataset and persists the whole document
// if fn succeeds. This is the only mutation path; an error from fn discards
// the in-memory changes.
func (s *Store) Update(ctx context.Context, fn func(ds *model.Dataset) error) error {
	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.Save(ctx, ds)
}
