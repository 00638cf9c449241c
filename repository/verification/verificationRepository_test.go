package verification

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/TonCerques/alugaki/model"
	profilerepo "github.com/TonCerques/alugaki/repository/profile"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/TonCerques/alugaki/util/database"

	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (Repo, profilerepo.Repo) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "alugaki.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := store.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return New(st), profilerepo.New(st)
}

func TestCreate_MarksProfilePending(t *testing.T) {
	ctx := context.Background()
	r, profiles := newRepo(t)

	_, err := profiles.Create(ctx, "u-1", "u-1@example.com", "Someone")
	require.NoError(t, err)

	log, err := r.Create(ctx, "u-1", "cnh")
	require.NoError(t, err)
	require.NotEmpty(t, log.ID)
	require.Equal(t, StatusPending, log.Status)
	require.Equal(t, "cnh", log.DocumentType)

	p, err := profiles.Find(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, model.KycPending, p.KycStatus)
}

func TestFindByUser_FiltersAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	r, profiles := newRepo(t)

	_, err := profiles.Create(ctx, "u-1", "u-1@example.com", "Someone")
	require.NoError(t, err)
	_, err = profiles.Create(ctx, "u-2", "u-2@example.com", "Other")
	require.NoError(t, err)

	first, err := r.Create(ctx, "u-1", "cnh")
	require.NoError(t, err)
	_, err = r.Create(ctx, "u-2", "passport")
	require.NoError(t, err)
	second, err := r.Create(ctx, "u-1", "rg")
	require.NoError(t, err)

	logs, err := r.FindByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, first.ID, logs[0].ID)
	require.Equal(t, second.ID, logs[1].ID)

	logs, err = r.FindByUser(ctx, "stranger")
	require.NoError(t, err)
	require.Empty(t, logs)
}
