package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ecoconnect-go/internal/async"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoRefreshToken     = errors.New("no refresh token available")
)

// Service is the backend collaborator for session operations. The contract
// is a fixed latency and a canned response shape; the slice depends on
// nothing else.
type Service interface {
	Login(ctx context.Context, creds Credentials) (*AuthResponse, error)
	Register(ctx context.Context, data RegisterData) (*AuthResponse, error)
	SocialLogin(ctx context.Context, data SocialLoginData) (*AuthResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

const demoEmail = "demo@example.com"

type mockService struct {
	secret       []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
	latencyScale float64
	demoHash     []byte
	logger       *slog.Logger
}

// NewMockService builds the simulated auth backend. Tokens are real signed
// JWTs so refresh has something to validate; the demo account's password is
// bcrypt-checked like a live backend would.
func NewMockService(secret []byte, accessTTL, refreshTTL time.Duration, latencyScale float64, logger *slog.Logger) Service {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		// bcrypt only fails on absurd cost values
		panic(fmt.Sprintf("seed demo password: %v", err))
	}
	return &mockService{
		secret:       secret,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		latencyScale: latencyScale,
		demoHash:     hash,
		logger:       logger,
	}
}

func (s *mockService) wait(ctx context.Context, base time.Duration) error {
	return async.Delay(ctx, time.Duration(float64(base)*s.latencyScale))
}

func (s *mockService) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	if err := s.wait(ctx, time.Second); err != nil {
		return nil, err
	}
	if creds.Email != demoEmail {
		// No live server behind the mock; everything but the demo
		// account takes the real-request path and fails.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.demoHash, []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := demoUser()
	s.logger.Debug("mock login resolved", "email", creds.Email)
	return s.respond(user)
}

func (s *mockService) Register(ctx context.Context, data RegisterData) (*AuthResponse, error) {
	if err := s.wait(ctx, 1500*time.Millisecond); err != nil {
		return nil, err
	}

	user := User{
		ID:          uuid.New().String(),
		Email:       data.Email,
		Name:        data.Name,
		JoinDate:    time.Now(),
		ImpactScore: 0,
		Badges:      []Badge{},
		Preferences: defaultPreferences(),
	}
	s.logger.Debug("mock registration resolved", "email", data.Email)
	return s.respond(user)
}

func (s *mockService) SocialLogin(ctx context.Context, data SocialLoginData) (*AuthResponse, error) {
	if err := s.wait(ctx, 800*time.Millisecond); err != nil {
		return nil, err
	}

	provider := string(data.Provider)
	user := User{
		ID:          uuid.New().String(),
		Email:       provider + "user@example.com",
		Name:        cases.Title(language.English).String(provider) + " User",
		Avatar:      "https://via.placeholder.com/150",
		JoinDate:    time.Now(),
		ImpactScore: 50,
		Badges:      []Badge{},
		Preferences: defaultPreferences(),
		IsVerified:  true,
	}
	s.logger.Debug("mock social login resolved", "provider", provider)
	return s.respond(user)
}

func (s *mockService) Logout(ctx context.Context) error {
	// Best-effort remote invalidation; there is nothing real to invalidate.
	return s.wait(ctx, 300*time.Millisecond)
}

func (s *mockService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := s.wait(ctx, 500*time.Millisecond); err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return s.signAccessToken(userID)
}

func (s *mockService) respond(user User) (*AuthResponse, error) {
	access, err := s.signAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	})
	refreshString, err := refresh.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &AuthResponse{
		User: user,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refreshString,
		},
		ExpiresIn: int(s.accessTTL.Seconds()),
	}, nil
}

func (s *mockService) signAccessToken(userID string) (string, error) {
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	})
	signed, err := access.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func demoUser() User {
	return User{
		ID:          "1",
		Email:       demoEmail,
		Name:        "Demo User",
		Avatar:      "https://via.placeholder.com/150",
		Location:    &Coordinates{Latitude: 40.7128, Longitude: -74.0060},
		JoinDate:    time.Now(),
		ImpactScore: 150,
		Badges: []Badge{
			{
				ID:          "1",
				Name:        "First Cleanup",
				Description: "Participated in your first cleanup event",
				Icon:        "🌱",
				EarnedAt:    time.Now(),
			},
		},
		Preferences: defaultPreferences(),
		IsVerified:  true,
	}
}
