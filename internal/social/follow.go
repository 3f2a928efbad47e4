// Package social holds the suggested-users panel controller.
package social

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/forms"
	"edunity/internal/models"
	"edunity/internal/session"
)

// FollowPanel drives the who-to-follow panel: a suggestion list with
// per-user follow toggles.
//
// Unlike the feeds, follow toggles are not optimistic: the local following
// state flips only after the backend resolves, so a failed call leaves the
// button exactly where it was.
type FollowPanel struct {
	mu          sync.Mutex
	suggestions []models.User
	following   map[string]bool
	ignored     map[string]bool
	loading     bool

	api    *api.UserAPI
	sess   *session.Session
	logger *zap.Logger
}

// NewFollowPanel creates the controller. The following map is seeded from the
// session user's follow list.
func NewFollowPanel(client *api.Client, sess *session.Session, logger *zap.Logger) *FollowPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	following := make(map[string]bool)
	if sess != nil {
		for _, id := range sess.User.FollowingUsers {
			following[id] = true
		}
	}
	return &FollowPanel{
		following: following,
		ignored:   make(map[string]bool),
		api:       client.Users(),
		sess:      sess,
		logger:    logger,
	}
}

// Load fetches all users and keeps everyone except the session user as a
// suggestion.
func (p *FollowPanel) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	users, err := p.api.GetAll(ctx, p.sess.Token)
	if err != nil {
		p.logger.Error("Failed to load suggested users", zap.Error(err))
		return err
	}

	suggestions := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != p.sess.UserID() {
			suggestions = append(suggestions, u)
		}
	}

	p.mu.Lock()
	p.suggestions = suggestions
	p.mu.Unlock()
	return nil
}

// Suggestions returns the visible suggestions, skipping ignored users.
func (p *FollowPanel) Suggestions() []models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.User, 0, len(p.suggestions))
	for _, u := range p.suggestions {
		if !p.ignored[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

// Loading reports whether a Load is in flight.
func (p *FollowPanel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// IsFollowing reports the local following state for a user.
func (p *FollowPanel) IsFollowing(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.following[userID]
}

// Toggle follows or unfollows a user. The local state flips only after the
// backend call succeeds.
func (p *FollowPanel) Toggle(ctx context.Context, userID string) error {
	if !p.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to follow users")
	}

	p.mu.Lock()
	wasFollowing := p.following[userID]
	p.mu.Unlock()

	var err error
	if wasFollowing {
		err = p.api.Unfollow(ctx, userID, p.sess.Token)
	} else {
		err = p.api.Follow(ctx, userID, p.sess.Token)
	}
	if err != nil {
		p.logger.Warn("Follow toggle failed",
			zap.String("userId", userID),
			zap.Bool("wasFollowing", wasFollowing),
			zap.Error(err))
		return err
	}

	p.mu.Lock()
	p.following[userID] = !wasFollowing
	p.mu.Unlock()
	return nil
}

// Ignore hides a suggestion locally. The backend is not involved; the user
// reappears on the next session.
func (p *FollowPanel) Ignore(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ignored[userID] = true
}
