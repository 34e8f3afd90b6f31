package user

// ApplyPatch merges a partial update into a profile: top-level fields are
// shallow-merged, the preferences bundle is merged per nesting level.
func ApplyPatch(base Profile, patch ProfilePatch) Profile {
	if patch.Name != nil {
		base.Name = *patch.Name
	}
	if patch.Bio != nil {
		base.Bio = *patch.Bio
	}
	if patch.Location != nil {
		loc := *patch.Location
		base.Location = &loc
	}
	base.Preferences = MergePreferences(base.Preferences, patch.Preferences)
	return base
}

// MergePreferences merges a preference patch group by group. A nil group
// leaves the corresponding subtree untouched.
func MergePreferences(base Preferences, patch *PreferencesPatch) Preferences {
	if patch == nil {
		return base
	}
	base.Notifications = mergeNotifications(base.Notifications, patch.Notifications)
	base.Privacy = mergePrivacy(base.Privacy, patch.Privacy)
	base.Display = mergeDisplay(base.Display, patch.Display)
	return base
}

func mergeNotifications(base NotificationPrefs, patch *NotificationPrefsPatch) NotificationPrefs {
	if patch == nil {
		return base
	}
	if patch.Email != nil {
		base.Email = *patch.Email
	}
	if patch.Push != nil {
		base.Push = *patch.Push
	}
	if patch.EventReminders != nil {
		base.EventReminders = *patch.EventReminders
	}
	if patch.IssueUpdates != nil {
		base.IssueUpdates = *patch.IssueUpdates
	}
	if patch.CommunityHighlights != nil {
		base.CommunityHighlights = *patch.CommunityHighlights
	}
	if patch.WeeklyDigest != nil {
		base.WeeklyDigest = *patch.WeeklyDigest
	}
	if patch.AchievementAlerts != nil {
		base.AchievementAlerts = *patch.AchievementAlerts
	}
	return base
}

func mergePrivacy(base PrivacyPrefs, patch *PrivacyPrefsPatch) PrivacyPrefs {
	if patch == nil {
		return base
	}
	if patch.ShowLocation != nil {
		base.ShowLocation = *patch.ShowLocation
	}
	if patch.ShowActivity != nil {
		base.ShowActivity = *patch.ShowActivity
	}
	if patch.ShowStats != nil {
		base.ShowStats = *patch.ShowStats
	}
	if patch.AllowMessaging != nil {
		base.AllowMessaging = *patch.AllowMessaging
	}
	if patch.ProfileVisibility != nil {
		base.ProfileVisibility = *patch.ProfileVisibility
	}
	return base
}

func mergeDisplay(base DisplayPrefs, patch *DisplayPrefsPatch) DisplayPrefs {
	if patch == nil {
		return base
	}
	if patch.Theme != nil {
		base.Theme = *patch.Theme
	}
	if patch.Language != nil {
		base.Language = *patch.Language
	}
	if patch.Timezone != nil {
		base.Timezone = *patch.Timezone
	}
	if patch.DateFormat != nil {
		base.DateFormat = *patch.DateFormat
	}
	return base
}
