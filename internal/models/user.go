package models

// User represents a platform member. The session credential (bearer token) is
// deliberately not part of the model; it lives in the session package only.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ProfileImage   string   `json:"profileImage,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	FollowingUsers []string `json:"followingUsers,omitempty"`
	FollowedUsers  []string `json:"followedUsers,omitempty"`
}

// IsFollowing reports whether the user follows the given user id.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.FollowingUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Initial returns the display fallback used when no profile image is set.
func (u *User) Initial() string {
	if u.Name == "" {
		return "U"
	}
	return string([]rune(u.Name)[0:1])
}
