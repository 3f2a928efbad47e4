package models

import "time"

// Progress template types. Each template determines which form fields are
// shown and required; see the forms package.
const (
	TemplateGeneral  = "general"
	TemplateTutorial = "tutorial"
	TemplateProject  = "project"
)

// Progress statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// LearningProgress is a progress update entry. Which of the template fields
// carry content depends on TemplateType; absent fields are empty strings.
type LearningProgress struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	UserProfileImage string    `json:"userProfileImage,omitempty"`
	TemplateType     string    `json:"templateType"`
	Status           string    `json:"status"`
	Title            string    `json:"title,omitempty"`
	Description      string    `json:"description,omitempty"`
	TutorialName     string    `json:"tutorialName,omitempty"`
	ProjectName      string    `json:"projectName,omitempty"`
	SkillsLearned    string    `json:"skillsLearned,omitempty"`
	Challenges       string    `json:"challenges,omitempty"`
	NextSteps        string    `json:"nextSteps,omitempty"`
	Likes            []Like    `json:"likes,omitempty"`
	Comments         []Comment `json:"comments,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsLikedBy reports whether the given user has liked the entry.
func (p *LearningProgress) IsLikedBy(userID string) bool {
	return LikedBy(p.Likes, userID)
}

// ValidStatus reports whether s is one of the fixed status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidTemplate reports whether t is one of the fixed template types.
func ValidTemplate(t string) bool {
	switch t {
	case TemplateGeneral, TemplateTutorial, TemplateProject:
		return true
	}
	return false
}
