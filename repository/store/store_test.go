package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/util/database"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "alugaki.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestLoad_SeedsFixtures(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ds, err := s.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, SchemaVersion(), ds.SchemaVersion)
	require.True(t, hasUser(ds, CanonicalOwnerID))
	require.True(t, hasUser(ds, CanonicalRenterID))
	require.Len(t, ds.Items, 3)
	for _, it := range ds.Items {
		require.Equal(t, CanonicalOwnerID, it.OwnerID)
		require.True(t, it.IsActive)
	}
	require.Empty(t, ds.Bookings)
	require.Empty(t, ds.Messages)
}

func TestLoad_RepeatedLoadIsStable(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	// first load seeds and persists
	_, err := s.Load(ctx)
	require.NoError(t, err)

	ds1, err := s.Load(ctx)
	require.NoError(t, err)
	ds2, err := s.Load(ctx)
	require.NoError(t, err)

	// migrations are a no-op on valid, complete data
	require.Equal(t, ds1, ds2)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	created, err := time.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
	require.NoError(t, err)

	b := model.Booking{
		ID:            "bk-1",
		ItemID:        "item-1",
		RenterID:      CanonicalRenterID,
		OwnerID:       CanonicalOwnerID,
		StartDate:     created,
		EndDate:       created.AddDate(0, 0, 2),
		TotalPrice:    495,
		DepositAmount: 700,
		Status:        model.BookingPendingApproval,
		CreatedAt:     created,
	}
	err = s.Update(ctx, func(ds *model.Dataset) error {
		ds.Bookings = append(ds.Bookings, b)
		return nil
	})
	require.NoError(t, err)

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Bookings, 1)
	require.Equal(t, b, ds.Bookings[0])
}

func TestUpdate_ErrorDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.Update(ctx, func(ds *model.Dataset) error {
		ds.Items = nil
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Items, 3)
}

func TestLoad_CorruptDatasetResets(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Load(ctx)
	require.NoError(t, err)

	err = s.db.Bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(datasetKey), []byte("{definitely not json"))
	})
	require.NoError(t, err)

	// no error surfaces; migrations rebuild the canonical fixtures
	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, SchemaVersion(), ds.SchemaVersion)
	require.True(t, hasUser(ds, CanonicalOwnerID))
	require.True(t, hasUser(ds, CanonicalRenterID))
}

func TestMigrate_ReassignsDeprecatedOwner(t *testing.T) {
	ds := model.EmptyDataset()
	ds.SchemaVersion = 1
	ds.Items = append(ds.Items, model.Item{ID: "legacy-item", OwnerID: DeprecatedOwnerID})

	require.True(t, Migrate(ds))
	require.Equal(t, SchemaVersion(), ds.SchemaVersion)
	require.Equal(t, CanonicalOwnerID, ds.Items[0].OwnerID)
}

func TestMigrate_NoopWhenCurrent(t *testing.T) {
	ds := model.EmptyDataset()
	require.True(t, Migrate(ds))
	require.False(t, Migrate(ds))
}

func TestMigrate_Idempotent(t *testing.T) {
	ds := model.EmptyDataset()
	require.True(t, Migrate(ds))

	users, items := len(ds.Users), len(ds.Items)
	ds.SchemaVersion = 0 // force a rerun
	require.True(t, Migrate(ds))
	require.Len(t, ds.Users, users)
	require.Len(t, ds.Items, items)
}
