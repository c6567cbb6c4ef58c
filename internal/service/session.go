package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/readerly/circulate/internal/domain"
)

// SessionStore is the durable storage behind the session: a bearer
// credential and a serialized principal, cleared together on logout.
type SessionStore interface {
	SaveSession(token string, user domain.User) error
	SaveUser(user domain.User) error
	User() (domain.User, bool)
	ClearSession()
}

// Session holds the authenticated principal, or none. It starts anonymous
// and moves to authenticated on login, register, or restore; logout is the
// only way back.
type Session struct {
	repo   domain.AuthRepository
	store  SessionStore
	logger *slog.Logger

	mu   sync.RWMutex
	user *domain.User
}

// NewSession creates a session and restores a previously persisted principal
// from the store. A malformed stored value has already been purged by the
// store, so restore simply finds nothing and the session stays anonymous.
func NewSession(repo domain.AuthRepository, store SessionStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{repo: repo, store: store, logger: logger}
	if user, ok := store.User(); ok {
		s.user = &user
		logger.Debug("restored session", "email", user.Email)
	}
	return s
}

// Login submits credentials and on success persists the token and principal
// and moves to authenticated.
func (s *Session) Login(ctx context.Context, email, password string) (domain.User, error) {
	result, err := s.repo.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return s.establish(result)
}

// Register creates an account; a successful registration logs in directly.
func (s *Session) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	result, err := s.repo.Register(ctx, name, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return s.establish(result)
}

func (s *Session) establish(result domain.AuthResult) (domain.User, error) {
	if err := s.store.SaveSession(result.Token, result.User); err != nil {
		s.logger.Error("failed to persist session", "error", err)
		return domain.User{}, err
	}

	s.mu.Lock()
	user := result.User
	s.user = &user
	s.mu.Unlock()

	s.logger.Info("session established", "email", result.User.Email, "admin", result.User.IsAdmin)
	return result.User, nil
}

// Logout clears durable storage and moves to anonymous. It is synchronous
// and makes no network call.
func (s *Session) Logout() {
	s.store.ClearSession()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.logger.Info("logged out")
}

// Me refreshes the principal from the server and re-persists it.
func (s *Session) Me(ctx context.Context) (domain.User, error) {
	user, err := s.repo.Me(ctx)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.store.SaveUser(user); err != nil {
		s.logger.Warn("failed to persist refreshed principal", "error", err)
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.mu.Unlock()

	return user, nil
}

// Current returns the authenticated principal, if any.
func (s *Session) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a principal is present.
func (s *Session) LoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin reports whether the current principal has admin rights.
func (s *Session) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.IsAdmin
}
