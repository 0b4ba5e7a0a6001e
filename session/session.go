// Package session holds the one piece of state shared by every view: the
// authenticated user. The store is created once, resolved once at
// startup, injected into views, and cleared on logout.
package session

import (
	"context"
	"sync"

	"github.com/damrufest/judgeboard/apiclient"
	"github.com/damrufest/judgeboard/comp"
)

type Store struct {
	mu       sync.RWMutex
	api      *apiclient.Client
	user     *comp.User
	resolved bool
}

func NewStore(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// Resolve asks the backend who the session belongs to. Any failure -
// transport or 401 - means the viewer is anonymous; the error is never
// surfaced. Views block rendering until this has run once.
func (s *Store) Resolve(ctx context.Context) {
	user, err := s.api.WhoAmI(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.user = nil
	} else {
		s.user = user
	}
	s.resolved = true
}

// Resolved reports whether the initial session lookup has completed.
func (s *Store) Resolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// User returns the current session user, or nil when anonymous.
func (s *Store) User() *comp.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// Role returns the session role, or the empty role when anonymous.
func (s *Store) Role() comp.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// LoginResult is how a login attempt reports back to the view. Login
// never returns an error: every outcome is a value with a message fit
// for the screen.
type LoginResult struct {
	Success bool
	Msg     string
}

func (s *Store) Login(ctx context.Context, email, password string) LoginResult {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case apiclient.IsUnauthorized(err):
			return LoginResult{Msg: "Invalid credentials"}
		case apiclient.IsNotFound(err):
			return LoginResult{Msg: "User not found"}
		default:
			return LoginResult{Msg: "Server error"}
		}
	}

	s.mu.Lock()
	s.user = user
	s.resolved = true
	s.mu.Unlock()
	return LoginResult{Success: true}
}

// Logout notifies the server best-effort (the error is ignored) and
// always clears the local session.
func (s *Store) Logout(ctx context.Context) {
	_ = s.api.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
