package user

import (
	"context"
	"log/slog"
	"sync"

	"ecoconnect-go/internal/async"
)

// State is the profile slice's subtree. IsLoading covers fetches, IsUpdating
// covers patch submissions.
type State struct {
	Profile    *Profile
	IsLoading  bool
	IsUpdating bool
	Error      string
}

// Slice owns the current user's extended profile.
type Slice struct {
	mu     sync.RWMutex
	state  State
	svc    Service
	logger *slog.Logger
	notify func()
}

func NewSlice(svc Service, logger *slog.Logger, notify func()) *Slice {
	return &Slice{svc: svc, logger: logger, notify: notify}
}

// Snapshot returns a copy of the state safe to read outside the slice.
func (s *Slice) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if s.state.Profile != nil {
		profile := *s.state.Profile
		profile.Badges = append([]Badge(nil), s.state.Profile.Badges...)
		state.Profile = &profile
	}
	return state
}

// FetchProfile replaces the profile wholesale: a fetch is authoritative.
func (s *Slice) FetchProfile(ctx context.Context, userID string) error {
	return async.Run(ctx, async.Lifecycle[string, *Profile]{
		Slice: "user",
		Name:  "fetch_profile",
		OnStart: func(string) {
			s.mu.Lock()
			s.state.IsLoading = true
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnSuccess: func(profile *Profile, _ string) {
			s.mu.Lock()
			s.state.Profile = profile
			s.state.IsLoading = false
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ string) {
			s.mu.Lock()
			s.state.IsLoading = false
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, userID, func(ctx context.Context, userID string) (*Profile, error) {
		return s.svc.GetProfile(ctx, userID)
	})
}

// UpdateProfile submits a partial update. On success the patch is merged into
// the held profile (shallow at the top level, deep for preferences) so local
// adjustments made since the fetch are not clobbered by a wholesale replace.
func (s *Slice) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	return async.Run(ctx, async.Lifecycle[ProfilePatch, *Profile]{
		Slice: "user",
		Name:  "update_profile",
		OnStart: func(ProfilePatch) {
			s.mu.Lock()
			s.state.IsUpdating = true
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnSuccess: func(result *Profile, patch ProfilePatch) {
			s.mu.Lock()
			if s.state.Profile == nil {
				s.state.Profile = result
			} else {
				merged := ApplyPatch(*s.state.Profile, patch)
				s.state.Profile = &merged
			}
			s.state.IsUpdating = false
			s.state.Error = ""
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ ProfilePatch) {
			s.mu.Lock()
			s.state.IsUpdating = false
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, patch, func(ctx context.Context, patch ProfilePatch) (*Profile, error) {
		return s.svc.UpdateProfile(ctx, patch)
	})
}

// UploadAvatar stores the produced URL on the held profile; nothing else
// changes.
func (s *Slice) UploadAvatar(ctx context.Context, filename string) error {
	return async.Run(ctx, async.Lifecycle[string, string]{
		Slice: "user",
		Name:  "upload_avatar",
		OnStart: func(string) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(avatarURL string, _ string) {
			s.mu.Lock()
			if s.state.Profile != nil {
				s.state.Profile.Avatar = avatarURL
			}
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ string) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, filename, func(ctx context.Context, filename string) (string, error) {
		return s.svc.UploadAvatar(ctx, filename)
	})
}

// FetchStats authoritatively replaces the stats block only.
func (s *Slice) FetchStats(ctx context.Context, userID string) error {
	return async.Run(ctx, async.Lifecycle[string, *Stats]{
		Slice: "user",
		Name:  "fetch_stats",
		OnStart: func(string) {
			s.mu.Lock()
			s.state.Error = ""
			s.mu.Unlock()
		},
		OnSuccess: func(stats *Stats, _ string) {
			s.mu.Lock()
			if s.state.Profile != nil {
				s.state.Profile.Stats = *stats
			}
			s.mu.Unlock()
			s.changed()
		},
		OnFailure: func(message string, _ string) {
			s.mu.Lock()
			s.state.Error = message
			s.mu.Unlock()
			s.changed()
		},
	}, userID, func(ctx context.Context, userID string) (*Stats, error) {
		return s.svc.GetStats(ctx, userID)
	})
}

// IncrementImpactScore applies a local adjustment without a network round
// trip, so point-granting features can update optimistically. A later
// authoritative stats fetch may overwrite it.
func (s *Slice) IncrementImpactScore(delta int) {
	s.mu.Lock()
	if s.state.Profile != nil {
		s.state.Profile.ImpactScore += delta
		s.state.Profile.Stats.TotalImpactPoints += delta
		s.state.Profile.Stats.Level = LevelForPoints(s.state.Profile.Stats.TotalImpactPoints)
	}
	s.mu.Unlock()
	s.changed()
}

// AddBadge appends a locally granted badge.
func (s *Slice) AddBadge(badge Badge) {
	s.mu.Lock()
	if s.state.Profile != nil {
		s.state.Profile.Badges = append(s.state.Profile.Badges, badge)
	}
	s.mu.Unlock()
	s.changed()
}

// ClearError drops the last operation error.
func (s *Slice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.changed()
}

func (s *Slice) changed() {
	if s.notify != nil {
		s.notify()
	}
}
