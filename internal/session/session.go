// Package session holds the signed-in user of a client process.  A
// Session is created once at startup, passed to whatever needs identity
// or role checks, and emptied on logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/client"
	"github.com/iliyamo/vessel-management/internal/model"
)

// Store keys.  Both are written on login and removed together on logout.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// ErrNotSignedIn is returned by operations that need a current user.
var ErrNotSignedIn = errors.New("not signed in")

type Session struct {
	Client *client.Client
	Store  Store
	Log    *zap.Logger

	mu   sync.RWMutex
	user *model.User
}

func New(c *client.Client, store Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{Client: c, Store: store, Log: log}
}

// Restore resumes a stored session: the saved token is verified with
// /auth/me.  A token the server rejects is cleared.  Without a saved
// token Restore does nothing.
func (s *Session) Restore(ctx context.Context) error {
	tok, ok := s.Store.Get(KeyAccessToken)
	if !ok || tok == "" {
		return nil
	}
	s.Client.SetToken(tok)
	u, err := s.Client.Me(ctx)
	if err != nil {
		s.Log.Warn("stored session rejected", zap.Error(err))
		s.clear()
		return err
	}
	s.setUser(u)
	return s.saveUser(u)
}

// Login signs in and persists the access token and user.
func (s *Session) Login(ctx context.Context, email, password string) (model.User, error) {
	resp, err := s.Client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Store.Set(KeyAccessToken, resp.AccessToken); err != nil {
		return model.User{}, err
	}
	if err := s.saveUser(resp.User); err != nil {
		return model.User{}, err
	}
	s.setUser(resp.User)
	return resp.User, nil
}

// Register creates an account without signing in.  The role defaults to
// crew.
func (s *Session) Register(ctx context.Context, in client.RegisterRequest) (client.RegisterResponse, error) {
	if in.Role == "" {
		in.Role = model.RoleCrew
	}
	return s.Client.Register(ctx, in)
}

// Logout revokes the server-side refresh tokens when possible and always
// forgets the local token and user.
func (s *Session) Logout(ctx context.Context) error {
	if s.Client.Token() != "" {
		if err := s.Client.Logout(ctx, ""); err != nil {
			s.Log.Debug("server logout failed", zap.Error(err))
		}
	}
	return s.clear()
}

func (s *Session) clear() error {
	s.Client.SetToken("")
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.Store.Delete(KeyAccessToken, KeyUser)
}

// User returns the signed-in user.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// StoredUser returns the last user written to the store, without asking
// the server.
func (s *Session) StoredUser() (model.User, bool) {
	raw, ok := s.Store.Get(KeyUser)
	if !ok {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *Session) IsAdmin() bool { return s.hasRole(model.RoleAdmin) }

func (s *Session) IsCrew() bool { return s.hasRole(model.RoleCrew) }

func (s *Session) hasRole(role string) bool {
	u, ok := s.User()
	return ok && u.Role == role
}

func (s *Session) setUser(u model.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

func (s *Session) saveUser(u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Store.Set(KeyUser, string(b))
}
