package models

import (
	"strings"
	"time"
)

// Notification types produced by the backend.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification is a user-facing event record.
type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	RelatedPostID string    `json:"relatedPostId,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Target resolves the navigation path a notification points at, or "" when
// the notification has no destination. Type matching is case-insensitive
// because stored data contains both casings.
func (n *Notification) Target() string {
	if n.RelatedPostID == "" {
		return ""
	}
	switch strings.ToLower(n.Type) {
	case NotificationComment:
		return "/comments/" + n.RelatedPostID
	case NotificationLike:
		return "/posts/" + n.RelatedPostID
	}
	return ""
}
