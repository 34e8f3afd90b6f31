package user

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"ecoconnect-go/internal/async"
)

var ErrProfileNotFound = errors.New("profile not found")

// Service is the backend collaborator for profile operations.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*Profile, error)
	UploadAvatar(ctx context.Context, filename string) (string, error)
	GetStats(ctx context.Context, userID string) (*Stats, error)
}

type mockService struct {
	latencyScale float64
	logger       *slog.Logger
}

// NewMockService builds the simulated profile backend.
func NewMockService(latencyScale float64, logger *slog.Logger) Service {
	return &mockService{latencyScale: latencyScale, logger: logger}
}

func (s *mockService) wait(ctx context.Context, base time.Duration) error {
	return async.Delay(ctx, time.Duration(float64(base)*s.latencyScale))
}

func (s *mockService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if err := s.wait(ctx, 800*time.Millisecond); err != nil {
		return nil, err
	}
	profile := cannedProfile(userID)
	return &profile, nil
}

func (s *mockService) UpdateProfile(ctx context.Context, patch ProfilePatch) (*Profile, error) {
	if err := s.wait(ctx, time.Second); err != nil {
		return nil, err
	}
	updated := ApplyPatch(cannedProfile("current-user"), patch)
	s.logger.Debug("mock profile update resolved")
	return &updated, nil
}

func (s *mockService) UploadAvatar(ctx context.Context, filename string) (string, error) {
	if err := s.wait(ctx, 2*time.Second); err != nil {
		return "", err
	}
	return "https://via.placeholder.com/150?text=" + url.QueryEscape(filename), nil
}

func (s *mockService) GetStats(ctx context.Context, userID string) (*Stats, error) {
	if err := s.wait(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}
	stats := cannedStats()
	return &stats, nil
}

func cannedStats() Stats {
	return Stats{
		EventsJoined:      12,
		EventsOrganized:   5,
		IssuesReported:    18,
		IssuesResolved:    3,
		PostsCreated:      24,
		LikesReceived:     156,
		CommentsReceived:  89,
		TotalImpactPoints: 1250,
		StreakDays:        15,
		Level:             LevelForPoints(1250),
	}
}

func cannedProfile(userID string) Profile {
	return Profile{
		ID:     userID,
		Email:  "demo@example.com",
		Name:   "Demo User",
		Avatar: "https://via.placeholder.com/150",
		Bio:    "Environmental enthusiast passionate about making a positive impact in my community.",
		Location: &Location{
			Latitude:  40.7128,
			Longitude: -74.0060,
			Address:   "New York, NY, USA",
		},
		JoinDate:    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		ImpactScore: 1250,
		Badges: []Badge{
			{
				ID:          "1",
				Name:        "First Cleanup",
				Description: "Participated in your first cleanup event",
				Icon:        "🌱",
				Category:    "cleanup",
				EarnedAt:    time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
				Rarity:      "common",
			},
			{
				ID:          "2",
				Name:        "Issue Reporter",
				Description: "Reported 10 environmental issues",
				Icon:        "📍",
				Category:    "reporting",
				EarnedAt:    time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
				Rarity:      "common",
			},
			{
				ID:          "3",
				Name:        "Community Leader",
				Description: "Organized 5 successful events",
				Icon:        "👑",
				Category:    "leadership",
				EarnedAt:    time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
				Rarity:      "rare",
			},
		},
		Preferences: Preferences{
			Notifications: NotificationPrefs{
				Email:               true,
				Push:                true,
				EventReminders:      true,
				IssueUpdates:        true,
				CommunityHighlights: true,
				WeeklyDigest:        true,
				AchievementAlerts:   true,
			},
			Privacy: PrivacyPrefs{
				ShowLocation:      true,
				ShowActivity:      true,
				ShowStats:         true,
				AllowMessaging:    true,
				ProfileVisibility: "public",
			},
			Display: DisplayPrefs{
				Theme:      "light",
				Language:   "en",
				Timezone:   "America/New_York",
				DateFormat: "MM/DD/YYYY",
			},
		},
		IsVerified: true,
		Stats:      cannedStats(),
	}
}
