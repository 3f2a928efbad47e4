package models

import "time"

// SkillPost is a skill-sharing feed item.
type SkillPost struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	UserName         string     `json:"userName"`
	UserProfileImage string     `json:"userProfileImage,omitempty"`
	Description      string     `json:"description"`
	MediaURLs        []MediaRef `json:"mediaUrls,omitempty"`
	Likes            []Like     `json:"likes,omitempty"`
	Comments         []Comment  `json:"comments,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// IsLikedBy reports whether the given user has liked the post.
func (p *SkillPost) IsLikedBy(userID string) bool {
	return LikedBy(p.Likes, userID)
}

// IsOwnedBy reports whether the given user authored the post.
func (p *SkillPost) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}
