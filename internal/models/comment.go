package models

import "time"

// Comment is a single comment on a skill post, learning plan or progress entry.
// UpdatedAt is nil until the comment is edited.
type Comment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	UserName  string     `json:"userName"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Like records that a user liked an item. The backend enforces uniqueness per
// (item, user); the client only assumes it when computing membership.
type Like struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedBy reports whether userID appears in the like list.
func LikedBy(likes []Like, userID string) bool {
	for _, l := range likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}
