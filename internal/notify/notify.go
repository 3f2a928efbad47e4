// Package notify holds the notification inbox controller.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/models"
	"edunity/internal/session"
)

// Inbox drives the notification list: load, unread count, mark-read on open,
// mark-all-read. Read state is backend-first: the local flag flips only after
// the corresponding call resolves.
type Inbox struct {
	mu      sync.Mutex
	items   []models.Notification
	loading bool

	api    *api.NotificationAPI
	sess   *session.Session
	logger *zap.Logger
}

// NewInbox creates the controller.
func NewInbox(client *api.Client, sess *session.Session, logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{
		api:    client.Notifications(),
		sess:   sess,
		logger: logger,
	}
}

// Load fetches the session user's notifications.
func (in *Inbox) Load(ctx context.Context) error {
	in.mu.Lock()
	in.loading = true
	in.mu.Unlock()
	defer func() {
		in.mu.Lock()
		in.loading = false
		in.mu.Unlock()
	}()

	items, err := in.api.List(ctx, in.sess.UserID(), in.sess.Token)
	if err != nil {
		in.logger.Error("Failed to load notifications", zap.Error(err))
		return err
	}

	in.mu.Lock()
	in.items = items
	in.mu.Unlock()
	return nil
}

// Items returns a copy of the notifications.
func (in *Inbox) Items() []models.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]models.Notification, len(in.items))
	copy(out, in.items)
	return out
}

// Loading reports whether a Load is in flight.
func (in *Inbox) Loading() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.loading
}

// UnreadCount returns the number of unread notifications.
func (in *Inbox) UnreadCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	count := 0
	for _, n := range in.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Open marks a notification as read and returns its navigation target ("" when
// the notification points nowhere). Already-read notifications skip the
// backend call.
func (in *Inbox) Open(ctx context.Context, notificationID string) (string, error) {
	in.mu.Lock()
	i := in.index(notificationID)
	if i < 0 {
		in.mu.Unlock()
		return "", nil
	}
	n := in.items[i]
	in.mu.Unlock()

	if !n.Read {
		if err := in.api.MarkRead(ctx, notificationID, in.sess.Token); err != nil {
			in.logger.Warn("Failed to mark notification read",
				zap.String("notificationId", notificationID), zap.Error(err))
			return "", err
		}
		in.mu.Lock()
		if i := in.index(notificationID); i >= 0 {
			in.items[i].Read = true
		}
		in.mu.Unlock()
	}
	return n.Target(), nil
}

// MarkAllRead marks every unread notification read, one backend call each.
// It stops on the first failure, leaving the rest unread.
func (in *Inbox) MarkAllRead(ctx context.Context) error {
	for _, n := range in.Items() {
		if n.Read {
			continue
		}
		if err := in.api.MarkRead(ctx, n.ID, in.sess.Token); err != nil {
			return err
		}
		in.mu.Lock()
		if i := in.index(n.ID); i >= 0 {
			in.items[i].Read = true
		}
		in.mu.Unlock()
	}
	return nil
}

// index finds a notification by id. Caller holds the lock.
func (in *Inbox) index(notificationID string) int {
	for i := range in.items {
		if in.items[i].ID == notificationID {
			return i
		}
	}
	return -1
}
