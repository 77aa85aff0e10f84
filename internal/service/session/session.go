// Package session tracks the auth state of the storefront: either Anonymous
// or Authenticated(username, token). The state survives restarts through the
// persistent store.
package session

import (
	"context"
	"errors"
	"sync"

	"shophub-client/internal/domain"
	"shophub-client/internal/store"
)

// ErrWeakPassword rejects a registration before any network call.
var ErrWeakPassword = errors.New("please choose a stronger password")

type gateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
}

// Session is the auth state machine.
type Session struct {
	mu       sync.Mutex
	api      gateway
	store    store.Store
	token    string
	username string
}

// New restores any persisted session from the store. A missing or unreadable
// token simply leaves the session anonymous.
func New(ctx context.Context, api gateway, st store.Store) *Session {
	s := &Session{api: api, store: st}
	if tok, err := st.Get(ctx, store.KeyAuthToken); err == nil {
		s.token = tok
	}
	if name, err := st.Get(ctx, store.KeyUsername); err == nil {
		s.username = name
	}
	return s
}

// Token returns the current auth token, or "" when anonymous. It satisfies
// api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login exchanges credentials for a token and persists the session. On
// failure the session stays anonymous and the server's message is returned
// unchanged.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()

	if err := s.store.Set(ctx, store.KeyAuthToken, token); err != nil {
		return err
	}
	return s.store.Set(ctx, store.KeyUsername, username)
}

// Register creates an account and immediately logs in with the same
// credentials. Weak passwords are rejected client-side before any request is
// dispatched.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	if passwordStrength(password) <= 2 {
		return ErrWeakPassword
	}
	if _, err := s.api.Register(ctx, username, email, password); err != nil {
		return err
	}
	return s.Login(ctx, username, password)
}

// Logout drops to Anonymous and clears the persisted token. The token is not
// invalidated server-side.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, store.KeyAuthToken); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.KeyUsername)
}

// passwordStrength counts satisfied requirements: length >= 8, an uppercase
// letter, a lowercase letter, a digit and a non-alphanumeric character.
// A score of 2 or less is considered weak.
func passwordStrength(p string) int {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	score := 0
	if len(p) >= 8 {
		score++
	}
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			score++
		}
	}
	return score
}
