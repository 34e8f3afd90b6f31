package auth

import "time"

// Coordinates is a bare latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Badge is an earned achievement. Immutable once created.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// NotificationPrefs holds the per-channel notification toggles.
type NotificationPrefs struct {
	Email               bool `json:"email"`
	Push                bool `json:"push"`
	EventReminders      bool `json:"event_reminders"`
	IssueUpdates        bool `json:"issue_updates"`
	CommunityHighlights bool `json:"community_highlights"`
}

// PrivacyPrefs holds the visibility toggles.
type PrivacyPrefs struct {
	ShowLocation   bool `json:"show_location"`
	ShowActivity   bool `json:"show_activity"`
	AllowMessaging bool `json:"allow_messaging"`
}

// Preferences bundles a user's settings.
type Preferences struct {
	Notifications NotificationPrefs `json:"notifications"`
	Privacy       PrivacyPrefs      `json:"privacy"`
	Theme         string            `json:"theme"`
}

// User is the session-level identity. The extended profile view lives in the
// user package.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
	JoinDate    time.Time    `json:"join_date"`
	ImpactScore int          `json:"impact_score"`
	Badges      []Badge      `json:"badges"`
	Preferences Preferences  `json:"preferences"`
	IsVerified  bool         `json:"is_verified"`
	IsAuthority bool         `json:"is_authority"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SocialProvider is the closed set of supported identity providers.
type SocialProvider string

const (
	ProviderGoogle   SocialProvider = "google"
	ProviderFacebook SocialProvider = "facebook"
)

type SocialLoginData struct {
	Provider SocialProvider `json:"provider"`
	Token    string         `json:"token"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the collaborator's answer to any successful sign-in.
type AuthResponse struct {
	User      User      `json:"user"`
	Tokens    TokenPair `json:"tokens"`
	ExpiresIn int       `json:"expires_in"`
}

func defaultPreferences() Preferences {
	return Preferences{
		Notifications: NotificationPrefs{
			Email:               true,
			Push:                true,
			EventReminders:      true,
			IssueUpdates:        true,
			CommunityHighlights: true,
		},
		Privacy: PrivacyPrefs{
			ShowLocation:   true,
			ShowActivity:   true,
			AllowMessaging: true,
		},
		Theme: "light",
	}
}
