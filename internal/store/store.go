package store

import (
	"fmt"
	"log/slog"
	"sync"

	"ecoconnect-go/config"
	"ecoconnect-go/internal/auth"
	"ecoconnect-go/internal/kvstore"
	"ecoconnect-go/internal/logging"
	"ecoconnect-go/internal/social"
	"ecoconnect-go/internal/user"
)

// Store is the application's state container. It owns one slice per domain
// and fans state-change notifications out to subscribers.
type Store struct {
	auth   *auth.Slice
	user   *user.Slice
	social *social.Slice

	tokens kvstore.Store
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// New wires the slices from configuration. An empty TOKEN_STORE_PATH keeps
// the session in memory only; a nil logger gets one built from the config.
func New(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.New(cfg.LogLevel, cfg.Environment)
	}

	var tokens kvstore.Store
	if cfg.TokenStorePath == "" {
		tokens = kvstore.NewMemory()
	} else {
		sqlite, err := kvstore.OpenSQLite(cfg.TokenStorePath)
		if err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		tokens = sqlite
	}

	s := &Store{
		tokens:      tokens,
		logger:      logger,
		subscribers: make(map[int]func()),
	}

	authSvc := auth.NewMockService(
		[]byte(cfg.JWTSecret),
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		cfg.LatencyScale,
		logger,
	)
	userSvc := user.NewMockService(cfg.LatencyScale, logger)
	socialSvc := social.NewMockService(cfg.FeedPageSize, cfg.LatencyScale, logger)

	s.auth = auth.NewSlice(authSvc, tokens, logger, s.broadcast)
	s.user = user.NewSlice(userSvc, logger, s.broadcast)
	s.social = social.NewSlice(socialSvc, cfg.FeedPageSize, logger, s.broadcast)

	return s, nil
}

func (s *Store) Auth() *auth.Slice     { return s.auth }
func (s *Store) User() *user.Slice     { return s.user }
func (s *Store) Social() *social.Slice { return s.social }

// Subscribe registers a listener invoked after every state transition, in any
// slice. The returned function removes it. Listeners run on the goroutine
// that performed the transition and should read state via the slices'
// Snapshot methods.
func (s *Store) Subscribe(listener func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Close releases the token store. Slices hold no other resources.
func (s *Store) Close() error {
	return s.tokens.Close()
}

func (s *Store) broadcast() {
	s.mu.Lock()
	listeners := make([]func(), 0, len(s.subscribers))
	for _, listener := range s.subscribers {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}
