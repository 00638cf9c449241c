// service/auth/auth_service_test.go
package auth

import (
	"context"
	"testing"

	"github.com/TonCerques/alugaki/model"
	profilerepo "github.com/TonCerques/alugaki/repository/profile"
	userrepo "github.com/TonCerques/alugaki/repository/user"
	"github.com/TonCerques/alugaki/util/hash"

	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	createFn  func(ctx context.Context, email, passwordHash string) (model.User, error)
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id string) (*model.User, error)
}

var _ userrepo.Repo = (*mockUsers)(nil)

func (m *mockUsers) Create(ctx context.Context, email, passwordHash string) (model.User, error) {
	return m.createFn(ctx, email, passwordHash)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

type mockProfiles struct {
	createFn func(ctx context.Context, userID, email, fullName string) (model.Profile, error)
	findFn   func(ctx context.Context, userID string) (*model.Profile, error)
}

var _ profilerepo.Repo = (*mockProfiles)(nil)

func (m *mockProfiles) Create(ctx context.Context, userID, email, fullName string) (model.Profile, error) {
	return m.createFn(ctx, userID, email, fullName)
}

func (m *mockProfiles) Find(ctx context.Context, userID string) (*model.Profile, error) {
	if m.findFn == nil {
		return nil, nil
	}
	return m.findFn(ctx, userID)
}

func (m *mockProfiles) Update(ctx context.Context, userID string, upd profilerepo.Update) (*model.Profile, error) {
	return nil, nil
}

func (m *mockProfiles) UpdateKycStatus(ctx context.Context, userID string, status model.KycStatus) (*model.Profile, error) {
	return nil, nil
}

// --- tests ---

func TestSignUp_Success(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{
		createFn: func(ctx context.Context, email, passwordHash string) (model.User, error) {
			require.NotEqual(t, "supersecret", passwordHash) // never stored plain
			return model.User{ID: "u-1", Email: email, PasswordHash: passwordHash}, nil
		},
	}
	profiles := &mockProfiles{
		createFn: func(ctx context.Context, userID, email, fullName string) (model.Profile, error) {
			require.Equal(t, "u-1", userID)
			return model.Profile{ID: userID, Email: email, FullName: fullName, KycStatus: model.KycUnverified}, nil
		},
	}
	svc := New(users, profiles, "test-secret")

	p, token, err := svc.SignUp(ctx, "ana@example.com", "supersecret", "Ana Souza")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "u-1", p.ID)
	require.Equal(t, "Ana Souza", p.FullName)
}

func TestSignUp_DefaultsNameFromEmail(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{
		createFn: func(ctx context.Context, email, passwordHash string) (model.User, error) {
			return model.User{ID: "u-2", Email: email}, nil
		},
	}
	profiles := &mockProfiles{
		createFn: func(ctx context.Context, userID, email, fullName string) (model.Profile, error) {
			return model.Profile{ID: userID, FullName: fullName}, nil
		},
	}
	svc := New(users, profiles, "test-secret")

	p, _, err := svc.SignUp(ctx, "bruno@example.com", "supersecret", "")
	require.NoError(t, err)
	require.Equal(t, "bruno", p.FullName)
}

func TestSignUp_EmailTaken(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{
		createFn: func(ctx context.Context, email, passwordHash string) (model.User, error) {
			return model.User{}, userrepo.ErrDuplicateEmail
		},
	}
	svc := New(users, &mockProfiles{}, "test-secret")

	_, _, err := svc.SignUp(ctx, "taken@example.com", "supersecret", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed, err := hash.HashPassword(pw)
	require.NoError(t, err)

	users := &mockUsers{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-7", Email: email, PasswordHash: hashed}, nil
		},
	}
	profiles := &mockProfiles{
		findFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{ID: userID, KycStatus: model.KycVerified}, nil
		},
	}
	svc := New(users, profiles, "test-secret")

	p, token, err := svc.SignIn(ctx, "ana@example.com", pw)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "u-7", p.ID)

	uid, err := svc.Session("Bearer " + token)
	require.NoError(t, err)
	require.Equal(t, "u-7", uid)
}

func TestSignIn_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockUsers{}, &mockProfiles{}, "test-secret")

	_, _, err := svc.SignIn(ctx, "missing@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestSignIn_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed, err := hash.HashPassword("correct-password")
	require.NoError(t, err)

	users := &mockUsers{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-9", Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(users, &mockProfiles{}, "test-secret")

	_, _, err = svc.SignIn(ctx, "ana@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestOnAuthStateChange(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{
		createFn: func(ctx context.Context, email, passwordHash string) (model.User, error) {
			return model.User{ID: "u-3", Email: email}, nil
		},
	}
	profiles := &mockProfiles{
		createFn: func(ctx context.Context, userID, email, fullName string) (model.Profile, error) {
			return model.Profile{ID: userID}, nil
		},
	}
	svc := New(users, profiles, "test-secret")

	var events []string
	off := svc.OnAuthStateChange(func(event, userID string) {
		events = append(events, event+":"+userID)
	})

	_, _, err := svc.SignUp(ctx, "carla@example.com", "supersecret", "Carla")
	require.NoError(t, err)
	svc.SignOut(ctx)
	require.Equal(t, []string{EventSignedIn + ":u-3", EventSignedOut + ":"}, events)

	off()
	svc.SignOut(ctx)
	require.Len(t, events, 2)
}
