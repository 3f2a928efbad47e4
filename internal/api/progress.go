package api

import (
	"context"
	"net/http"

	"edunity/internal/models"
)

// LearningProgressAPI wraps the learning-progress endpoints.
type LearningProgressAPI struct {
	client *Client
}

// CreateProgressRequest is the progress creation payload. All seven template
// fields are always present; fields the active template does not declare are
// submitted as empty strings.
type CreateProgressRequest struct {
	UserID           string `json:"userId" validate:"required"`
	UserName         string `json:"userName" validate:"required"`
	UserProfileImage string `json:"userProfileImage,omitempty"`
	TemplateType     string `json:"templateType" validate:"required,oneof=general tutorial project"`
	Status           string `json:"status" validate:"required,oneof=not_started in_progress completed"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	TutorialName     string `json:"tutorialName"`
	ProjectName      string `json:"projectName"`
	SkillsLearned    string `json:"skillsLearned"`
	Challenges       string `json:"challenges"`
	NextSteps        string `json:"nextSteps"`
}

// UpdateProgressRequest is the edit-modal payload; shape matches creation
// minus the identity fields.
type UpdateProgressRequest struct {
	TemplateType  string `json:"templateType" validate:"required,oneof=general tutorial project"`
	Status        string `json:"status" validate:"required,oneof=not_started in_progress completed"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TutorialName  string `json:"tutorialName"`
	ProjectName   string `json:"projectName"`
	SkillsLearned string `json:"skillsLearned"`
	Challenges    string `json:"challenges"`
	NextSteps     string `json:"nextSteps"`
}

// List fetches all progress entries.
func (a *LearningProgressAPI) List(ctx context.Context, token string) ([]models.LearningProgress, error) {
	var entries []models.LearningProgress
	if err := a.client.do(ctx, http.MethodGet, "/api/learning-progress", nil, nil, token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUser fetches one user's progress entries (dashboard source data).
func (a *LearningProgressAPI) ListByUser(ctx context.Context, userID, token string) ([]models.LearningProgress, error) {
	var entries []models.LearningProgress
	path := "/api/learning-progress/user/" + userID
	if err := a.client.do(ctx, http.MethodGet, path, nil, nil, token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create stores a new entry and returns the backend's copy.
func (a *LearningProgressAPI) Create(ctx context.Context, req *CreateProgressRequest, token string) (*models.LearningProgress, error) {
	var entry models.LearningProgress
	path := "/api/learning-progress/user/" + req.UserID
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update edits an entry.
func (a *LearningProgressAPI) Update(ctx context.Context, progressID string, req *UpdateProgressRequest, token string) (*models.LearningProgress, error) {
	var entry models.LearningProgress
	if err := a.client.do(ctx, http.MethodPut, "/api/learning-progress/"+progressID, nil, req, token, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes an entry.
func (a *LearningProgressAPI) Delete(ctx context.Context, progressID, token string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/learning-progress/"+progressID, nil, nil, token, nil)
}

// AddLike likes an entry and returns the backend's updated copy.
func (a *LearningProgressAPI) AddLike(ctx context.Context, progressID string, req *AddLikeRequest, token string) (*models.LearningProgress, error) {
	var entry models.LearningProgress
	path := "/api/learning-progress/" + progressID + "/likes"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveLike withdraws the given user's like.
func (a *LearningProgressAPI) RemoveLike(ctx context.Context, progressID, userID, token string) error {
	path := "/api/learning-progress/" + progressID + "/likes/" + userID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}

// AddComment appends a comment and returns the backend's updated entry.
func (a *LearningProgressAPI) AddComment(ctx context.Context, progressID string, req *AddCommentRequest, token string) (*models.LearningProgress, error) {
	var entry models.LearningProgress
	path := "/api/learning-progress/" + progressID + "/comments"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateComment edits a comment's content.
func (a *LearningProgressAPI) UpdateComment(ctx context.Context, progressID, commentID, content, token string) error {
	path := "/api/learning-progress/" + progressID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodPut, path, nil, &UpdateCommentRequest{Content: content}, token, nil)
}

// DeleteComment removes a comment.
func (a *LearningProgressAPI) DeleteComment(ctx context.Context, progressID, commentID, token string) error {
	path := "/api/learning-progress/" + progressID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}
