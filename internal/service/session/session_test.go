package session

import (
	"context"
	"errors"
	"testing"

	"shophub-client/internal/api"
	"shophub-client/internal/domain"
	"shophub-client/internal/store"
)

type stubGateway struct {
	token        string
	loginErr     error
	registerErr  error
	loginCalls   int
	lastLogin    [2]string
	lastRegister [3]string
}

func (s *stubGateway) Login(_ context.Context, username, password string) (string, error) {
	s.loginCalls++
	s.lastLogin = [2]string{username, password}
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

func (s *stubGateway) Register(_ context.Context, username, email, password string) (*domain.User, error) {
	s.lastRegister = [3]string{username, email, password}
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: 1, Username: username, Email: email}, nil
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	gw := &stubGateway{token: "tok-1"}
	s := New(ctx, gw, st)

	if err := s.Login(ctx, "alice", "Secret123!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsAuthenticated() || s.Token() != "tok-1" || s.Username() != "alice" {
		t.Fatalf("unexpected session state: token=%q username=%q", s.Token(), s.Username())
	}

	tok, err := st.Get(ctx, store.KeyAuthToken)
	if err != nil || tok != "tok-1" {
		t.Fatalf("expected persisted token, got %q err %v", tok, err)
	}
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	serverErr := &api.Error{Status: 400, Message: "Invalid credentials"}
	s := New(ctx, &stubGateway{loginErr: serverErr}, st)

	err := s.Login(ctx, "alice", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("expected server message verbatim, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected anonymous session after failed login")
	}
	if _, err := st.Get(ctx, store.KeyAuthToken); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no persisted token, got %v", err)
	}
}

func TestRestoreFromStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	st.Set(ctx, store.KeyAuthToken, "tok-9")
	st.Set(ctx, store.KeyUsername, "bob")

	s := New(ctx, &stubGateway{}, st)
	if !s.IsAuthenticated() || s.Username() != "bob" || s.Token() != "tok-9" {
		t.Fatalf("expected restored session, got token=%q username=%q", s.Token(), s.Username())
	}
}

func TestLogoutClearsState(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	gw := &stubGateway{token: "tok-1"}
	s := New(ctx, gw, st)
	if err := s.Login(ctx, "alice", "Secret123!"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.IsAuthenticated() || s.Username() != "" {
		t.Fatalf("expected anonymous session")
	}
	if _, err := st.Get(ctx, store.KeyAuthToken); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected token removed from store, got %v", err)
	}
	if _, err := st.Get(ctx, store.KeyUsername); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected username removed from store, got %v", err)
	}
}

func TestRegisterRejectsWeakPasswordBeforeNetwork(t *testing.T) {
	ctx := context.Background()
	gw := &stubGateway{}
	s := New(ctx, gw, store.NewMemory())

	err := s.Register(ctx, "alice", "alice@example.com", "abc")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if gw.lastRegister[0] != "" || gw.loginCalls != 0 {
		t.Fatalf("expected no network calls for a weak password")
	}
}

func TestRegisterLogsInAutomatically(t *testing.T) {
	ctx := context.Background()
	gw := &stubGateway{token: "tok-2"}
	s := New(ctx, gw, store.NewMemory())

	if err := s.Register(ctx, "alice", "alice@example.com", "Secret123!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastRegister != [3]string{"alice", "alice@example.com", "Secret123!"} {
		t.Fatalf("unexpected register payload: %v", gw.lastRegister)
	}
	if gw.loginCalls != 1 {
		t.Fatalf("expected one login call, got %d", gw.loginCalls)
	}
	if !s.IsAuthenticated() || s.Token() != "tok-2" {
		t.Fatalf("expected authenticated session after register")
	}
}

func TestRegisterServerErrorSurfacesVerbatim(t *testing.T) {
	ctx := context.Background()
	serverErr := &api.Error{Status: 400, Message: "A user with this username already exists."}
	gw := &stubGateway{registerErr: serverErr}
	s := New(ctx, gw, store.NewMemory())

	err := s.Register(ctx, "alice", "alice@example.com", "Secret123!")
	if err == nil || err.Error() != "A user with this username already exists." {
		t.Fatalf("expected server message verbatim, got %v", err)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("expected no login after failed register")
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		weak     bool
	}{
		{"abc", true},
		{"password", true},
		{"Password", false},
		{"passw0rd", false},
		{"Aa1!", false},
		{"", true},
	}
	for _, tc := range cases {
		if got := passwordStrength(tc.password) <= 2; got != tc.weak {
			t.Fatalf("password %q: weak=%v, expected %v", tc.password, got, tc.weak)
		}
	}
}
