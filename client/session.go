package client

import (
	"context"
	"sync"

	"edu-platform-api/logger"
)

// Session mirrors server-side login state for a consumer. All methods are
// safe for concurrent use. The container performs no UI side effects; after
// Logout it is the caller's job to react (e.g. navigate away).
type Session struct {
	mu       sync.Mutex
	client   *Client
	user     *User
	loggedIn bool
	loading  bool
}

func NewSession(c *Client) *Session {
	return &Session{
		client:  c,
		loading: true,
	}
}

// Init performs the one startup status check. Any failure, network or auth,
// degrades to logged-out: it is logged but never returned. Loading flips to
// false exactly once, whatever the outcome.
func (s *Session) Init(ctx context.Context) {
	user, err := s.client.AuthStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.Log.WithError(err).Warn("Auth status check failed, starting logged out")
		s.user = nil
		s.loggedIn = false
	} else {
		s.user = user
		s.loggedIn = true
	}
	s.loading = false
}

// Login authenticates and, on success, marks the session logged in.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = true
	return nil
}

// Signup registers and, on success, marks the session logged in.
func (s *Session) Signup(ctx context.Context, username, name, email, password string) error {
	user, err := s.client.Signup(ctx, username, name, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = true
	return nil
}

// Logout ends the server session and clears local state either way. The
// returned error reports the server call's outcome so callers can decide
// what to do next.
func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.loggedIn = false
	s.mu.Unlock()

	return err
}

// User returns the current principal, or nil when logged out.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Loading reports whether the startup status check is still in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
