package user

import "time"

// Location is a coordinate pair with an optional human-readable address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Badge is an earned achievement with profile-page extras (category, rarity).
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	EarnedAt    time.Time `json:"earned_at"`
	Rarity      string    `json:"rarity"`
}

// Stats is the extended activity block shown on the profile page.
type Stats struct {
	EventsJoined      int `json:"events_joined"`
	EventsOrganized   int `json:"events_organized"`
	IssuesReported    int `json:"issues_reported"`
	IssuesResolved    int `json:"issues_resolved"`
	PostsCreated      int `json:"posts_created"`
	LikesReceived     int `json:"likes_received"`
	CommentsReceived  int `json:"comments_received"`
	TotalImpactPoints int `json:"total_impact_points"`
	StreakDays        int `json:"streak_days"`
	Level             int `json:"level"`
}

type NotificationPrefs struct {
	Email               bool `json:"email"`
	Push                bool `json:"push"`
	EventReminders      bool `json:"event_reminders"`
	IssueUpdates        bool `json:"issue_updates"`
	CommunityHighlights bool `json:"community_highlights"`
	WeeklyDigest        bool `json:"weekly_digest"`
	AchievementAlerts   bool `json:"achievement_alerts"`
}

type PrivacyPrefs struct {
	ShowLocation      bool   `json:"show_location"`
	ShowActivity      bool   `json:"show_activity"`
	ShowStats         bool   `json:"show_stats"`
	AllowMessaging    bool   `json:"allow_messaging"`
	ProfileVisibility string `json:"profile_visibility"`
}

type DisplayPrefs struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"date_format"`
}

// Preferences is the nested settings bundle. Updates deep-merge so patching
// one leaf never clobbers a sibling group.
type Preferences struct {
	Notifications NotificationPrefs `json:"notifications"`
	Privacy       PrivacyPrefs      `json:"privacy"`
	Display       DisplayPrefs      `json:"display"`
}

// Profile is the extended view of the current user. One exists per
// authenticated session.
type Profile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	Location    *Location   `json:"location,omitempty"`
	JoinDate    time.Time   `json:"join_date"`
	ImpactScore int         `json:"impact_score"`
	Badges      []Badge     `json:"badges"`
	Preferences Preferences `json:"preferences"`
	IsVerified  bool        `json:"is_verified"`
	IsAuthority bool        `json:"is_authority"`
	Stats       Stats       `json:"stats"`
}

// ProfilePatch carries a partial profile update. Nil fields are left alone;
// the preferences patch merges per nesting level.
type ProfilePatch struct {
	Name        *string           `json:"name,omitempty"`
	Bio         *string           `json:"bio,omitempty"`
	Location    *Location         `json:"location,omitempty"`
	Preferences *PreferencesPatch `json:"preferences,omitempty"`
}

type PreferencesPatch struct {
	Notifications *NotificationPrefsPatch `json:"notifications,omitempty"`
	Privacy       *PrivacyPrefsPatch      `json:"privacy,omitempty"`
	Display       *DisplayPrefsPatch      `json:"display,omitempty"`
}

type NotificationPrefsPatch struct {
	Email               *bool `json:"email,omitempty"`
	Push                *bool `json:"push,omitempty"`
	EventReminders      *bool `json:"event_reminders,omitempty"`
	IssueUpdates        *bool `json:"issue_updates,omitempty"`
	CommunityHighlights *bool `json:"community_highlights,omitempty"`
	WeeklyDigest        *bool `json:"weekly_digest,omitempty"`
	AchievementAlerts   *bool `json:"achievement_alerts,omitempty"`
}

type PrivacyPrefsPatch struct {
	ShowLocation      *bool   `json:"show_location,omitempty"`
	ShowActivity      *bool   `json:"show_activity,omitempty"`
	ShowStats         *bool   `json:"show_stats,omitempty"`
	AllowMessaging    *bool   `json:"allow_messaging,omitempty"`
	ProfileVisibility *string `json:"profile_visibility,omitempty"`
}

type DisplayPrefsPatch struct {
	Theme      *string `json:"theme,omitempty"`
	Language   *string `json:"language,omitempty"`
	Timezone   *string `json:"timezone,omitempty"`
	DateFormat *string `json:"date_format,omitempty"`
}
