package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoconnect-go/config"
	"ecoconnect-go/internal/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		LatencyScale:    0,
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		FeedPageSize:    10,
		LogLevel:        "debug",
	}
}

func newTestStore(t *testing.T, cfg *config.Config) *Store {
	t.Helper()
	s, err := New(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew(t *testing.T) {
	s, err := New(testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.NotNil(t, s.Auth())
	assert.NotNil(t, s.User())
	assert.NotNil(t, s.Social())
	assert.False(t, s.Auth().Snapshot().IsAuthenticated)
}

func TestSubscribe(t *testing.T) {
	t.Run("listeners fire on transitions in any slice", func(t *testing.T) {
		s := newTestStore(t, testConfig())

		calls := 0
		unsubscribe := s.Subscribe(func() { calls++ })
		defer unsubscribe()

		require.NoError(t, s.Auth().Login(context.Background(), auth.Credentials{
			Email:    "demo@example.com",
			Password: "password",
		}))
		afterLogin := calls
		assert.GreaterOrEqual(t, afterLogin, 2) // pending and fulfilled at minimum

		s.Social().ResetFeed()
		assert.Greater(t, calls, afterLogin)
	})

	t.Run("unsubscribed listeners stop firing", func(t *testing.T) {
		s := newTestStore(t, testConfig())

		calls := 0
		unsubscribe := s.Subscribe(func() { calls++ })

		s.Social().ResetFeed()
		require.Equal(t, 1, calls)

		unsubscribe()
		s.Social().ResetFeed()
		assert.Equal(t, 1, calls)
	})

	t.Run("listeners observe the committed state", func(t *testing.T) {
		s := newTestStore(t, testConfig())

		var sawAuthenticated bool
		unsubscribe := s.Subscribe(func() {
			if s.Auth().Snapshot().IsAuthenticated {
				sawAuthenticated = true
			}
		})
		defer unsubscribe()

		require.NoError(t, s.Auth().Login(context.Background(), auth.Credentials{
			Email:    "demo@example.com",
			Password: "password",
		}))
		assert.True(t, sawAuthenticated)
	})
}

func TestSessionPersistence(t *testing.T) {
	cfg := testConfig()
	cfg.TokenStorePath = filepath.Join(t.TempDir(), "session.db")

	first, err := New(cfg, slog.Default())
	require.NoError(t, err)

	require.NoError(t, first.Auth().Login(context.Background(), auth.Credentials{
		Email:    "demo@example.com",
		Password: "password",
	}))
	token := first.Auth().Snapshot().AccessToken
	require.NotEmpty(t, token)
	require.NoError(t, first.Close())

	// A fresh store against the same file hydrates the session
	second := newTestStore(t, cfg)
	session := second.Auth().Snapshot()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, token, session.AccessToken)
	assert.Nil(t, session.User)
}

func TestCloseReleasesTokenStore(t *testing.T) {
	cfg := testConfig()
	cfg.TokenStorePath = filepath.Join(t.TempDir(), "session.db")

	s, err := New(cfg, slog.Default())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
