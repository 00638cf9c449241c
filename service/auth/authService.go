package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/TonCerques/alugaki/model"
	profilerepo "github.com/TonCerques/alugaki/repository/profile"
	userrepo "github.com/TonCerques/alugaki/repository/user"
	"github.com/TonCerques/alugaki/util/hash"
	jwtutil "github.com/TonCerques/alugaki/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid credentials")
)

// Auth state events delivered to subscribers.
const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// StateChange receives auth events. userID is empty on sign-out.
type StateChange func(event, userID string)

type Service interface {
	// SignUp creates the user and its profile together, then signs the user
	// in. The profile id is the user id, permanently.
	SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, string, error)
	SignIn(ctx context.Context, email, password string) (*model.Profile, string, error)
	SignOut(ctx context.Context)
	// Session resolves a bearer token back to a user id.
	Session(token string) (string, error)
	// OnAuthStateChange registers a subscriber; the returned func removes it.
	OnAuthStateChange(fn StateChange) func()
}

type service struct {
	users    userrepo.Repo
	profiles profilerepo.Repo
	secret   string

	mu     sync.Mutex
	nextID int
	subs   map[int]StateChange
}

func New(users userrepo.Repo, profiles profilerepo.Repo, secret string) Service {
	return &service{users: users, profiles: profiles, secret: secret, subs: map[int]StateChange{}}
}

func (s *service) SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, string, error) {
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.Create(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	if fullName == "" {
		fullName = strings.SplitN(email, "@", 2)[0]
	}
	p, err := s.profiles.Create(ctx, u.ID, email, fullName)
	if err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, 24)
	if err != nil {
		return nil, "", err
	}
	s.notify(EventSignedIn, u.ID)
	return &p, token, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (*model.Profile, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, password) {
		return nil, "", ErrInvalidCreds
	}

	p, err := s.profiles.Find(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, 24)
	if err != nil {
		return nil, "", err
	}
	s.notify(EventSignedIn, u.ID)
	return p, token, nil
}

func (s *service) SignOut(_ context.Context) {
	s.notify(EventSignedOut, "")
}

func (s *service) Session(token string) (string, error) {
	return jwtutil.ParseAuth(token, s.secret)
}

func (s *service) OnAuthStateChange(fn StateChange) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *service) notify(event, userID string) {
	s.mu.Lock()
	fns := make([]StateChange, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(event, userID)
	}
}
