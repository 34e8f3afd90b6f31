package auth

import (
	"context"
	"log/slog"
	"sync"

	"ecoconnect-go/internal/async"
	"ecoconnect-go/internal/kvstore"
)

const (
	keyAccessToken  = "token"
	keyRefreshToken = "refreshToken"
)

// Session is the auth slice's state subtree.
//
// Invariants: IsAuthenticated == (AccessToken != ""); a non-nil User implies
// IsAuthenticated.
type Session struct {
	User            *User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

// Slice owns the session subtree. All mutations go through its operations;
// transitions are atomic with respect to Snapshot readers.
type Slice struct {
	mu     sync.RWMutex
	state  Session
	svc    Service
	tokens kvstore.Store
	logger *slog.Logger
	notify func()
}

// NewSlice builds the auth slice and hydrates it from persisted tokens. A
// hydrated session is authenticated but has no user until a fetch populates
// one.
func NewSlice(svc Service, tokens kvstore.Store, logger *slog.Logger, notify func()) *Slice {
	s := &Slice{svc: svc, tokens: tokens, logger: logger, notify: notify}

	access, ok, err := tokens.Get(keyAccessToken)
	if err != nil {
		logger.Warn("token hydration failed", "error", err)
		return s
	}
	if ok && access != "" {
		refresh, _, _ := tokens.Get(keyRefreshToken)
		s.state.AccessToken = access
		s.state.RefreshToken = refresh
		s.state.IsAuthenticated = true
	}
	return s
}

// Snapshot returns a copy of the session safe to read outside the slice.
func (s *Slice) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if s.state.User != nil {
		user := *s.state.User
		user.Badges = append([]Badge(nil), s.state.User.Badges...)
		state.User = &user
	}
	return state
}

// Login authenticates with email/password credentials.
func (s *Slice) Login(ctx context.Context, creds Credentials) error {
	return async.Run(ctx, s.signInLifecycle("login"), any(creds),
		func(ctx context.Context, _ any) (*AuthResponse, error) {
			return s.svc.Login(ctx, creds)
		})
}

// Register creates a new account and signs it in.
func (s *Slice) Register(ctx context.Context, data RegisterData) error {
	return async.Run(ctx, s.signInLifecycle("register"), any(data),
		func(ctx context.Context, _ any) (*AuthResponse, error) {
			return s.svc.Register(ctx, data)
		})
}

// SocialLogin signs in through an identity provider.
func (s *Slice) SocialLogin(ctx context.Context, data SocialLoginData) error {
	return async.Run(ctx, s.signInLifecycle("social_login"), any(data),
		func(ctx context.Context, _ any) (*AuthResponse, error) {
			return s.svc.SocialLogin(ctx, data)
		})
}

// Logout clears the session. The remote invalidation call is best effort;
// local state and persisted tokens are cleared unconditionally, so logout is
// infallible from the caller's perspective.
func (s *Slice) Logout(ctx context.Context) {
	if err := s.svc.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}
	s.clear()
}

// Refresh exchanges the persisted refresh token for a new access token. A
// refresh failure is a hard logout: the refresh token itself is presumed
// invalid, so retrying would loop forever.
func (s *Slice) Refresh(ctx context.Context) error {
	refresh := s.Snapshot().RefreshToken

	return async.Run(ctx, async.Lifecycle[string, string]{
		Slice: "auth",
		Name:  "refresh",
		OnSuccess: func(token string, _ string) {
			s.mu.Lock()
			s.state.AccessToken = token
			s.state.IsAuthenticated = true
			s.mu.Unlock()
			s.persist(keyAccessToken, token)
			s.changed()
		},
		OnFailure: func(message string, _ string) {
			s.logger.Warn("token refresh failed, clearing session", "error", message)
			s.clear()
		},
	}, refresh, func(ctx context.Context, refresh string) (string, error) {
		return s.svc.Refresh(ctx, refresh)
	})
}

// ClearError drops the last operation error.
func (s *Slice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.changed()
}

func (s *Slice) signInLifecycle(name string) async.Lifecycle[any, *AuthResponse] {
	return async.Lifecycle[any, *AuthResponse]{
		Slice: "auth",
		Name:  name,
		OnStart: func(any) {
			s.mu.Lock()
			s.state.IsLoading = true
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnSuccess: func(resp *AuthResponse, _ any) {
			s.establish(resp)
		},
		OnFailure: func(message string, _ any) {
			s.mu.Lock()
			s.state.IsLoading = false
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}
}

// establish commits a successful sign-in. Token persistence happens together
// with the in-memory transition, never before the call resolved.
func (s *Slice) establish(resp *AuthResponse) {
	user := resp.User

	s.mu.Lock()
	s.state.User = &user
	s.state.AccessToken = resp.Tokens.AccessToken
	s.state.RefreshToken = resp.Tokens.RefreshToken
	s.state.IsAuthenticated = true
	s.state.IsLoading = false
	s.state.Error = ""
	s.mu.Unlock()

	s.persist(keyAccessToken, resp.Tokens.AccessToken)
	s.persist(keyRefreshToken, resp.Tokens.RefreshToken)
	s.changed()
}

func (s *Slice) clear() {
	s.mu.Lock()
	s.state = Session{}
	s.mu.Unlock()

	if err := s.tokens.Delete(keyAccessToken); err != nil {
		s.logger.Warn("token removal failed", "key", keyAccessToken, "error", err)
	}
	if err := s.tokens.Delete(keyRefreshToken); err != nil {
		s.logger.Warn("token removal failed", "key", keyRefreshToken, "error", err)
	}
	s.changed()
}

func (s *Slice) persist(key, value string) {
	if err := s.tokens.Set(key, value); err != nil {
		s.logger.Warn("token persistence failed", "key", key, "error", err)
	}
}

func (s *Slice) changed() {
	if s.notify != nil {
		s.notify()
	}
}
