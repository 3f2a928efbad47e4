package models

import (
	"strings"
	"time"
)

// LearningPlan is a shared learning roadmap. Topics and Resources are stored
// as comma-separated strings by the backend and parsed client-side.
type LearningPlan struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	UserProfileImage string    `json:"userProfileImage,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Topics           string    `json:"topics,omitempty"`
	Resources        string    `json:"resources,omitempty"`
	Likes            []Like    `json:"likes,omitempty"`
	Comments         []Comment `json:"comments,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// PlanResource is one parsed entry of a plan's resource list. Entries that
// start with "http" are rendered as links.
type PlanResource struct {
	Value  string
	IsLink bool
}

// TopicList parses the comma-separated topics string into trimmed tags.
func (p *LearningPlan) TopicList() []string {
	return splitTags(p.Topics)
}

// ResourceList parses the comma-separated resources string, flagging link
// entries.
func (p *LearningPlan) ResourceList() []PlanResource {
	tags := splitTags(p.Resources)
	if len(tags) == 0 {
		return nil
	}
	out := make([]PlanResource, 0, len(tags))
	for _, t := range tags {
		out = append(out, PlanResource{Value: t, IsLink: strings.HasPrefix(t, "http")})
	}
	return out
}

// IsLikedBy reports whether the given user has liked the plan.
func (p *LearningPlan) IsLikedBy(userID string) bool {
	return LikedBy(p.Likes, userID)
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
