package api

import (
	"context"
	"net/http"

	"edunity/internal/models"
)

// LearningPlanAPI wraps the learning-plan endpoints.
type LearningPlanAPI struct {
	client *Client
}

// CreatePlanRequest is the plan creation payload. Topics and Resources keep
// the backend's comma-separated string representation.
type CreatePlanRequest struct {
	UserID           string `json:"userId" validate:"required"`
	UserName         string `json:"userName" validate:"required"`
	UserProfileImage string `json:"userProfileImage,omitempty"`
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Topics           string `json:"topics"`
	Resources        string `json:"resources"`
}

// UpdatePlanRequest is the edit-modal payload.
type UpdatePlanRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Topics      string `json:"topics"`
	Resources   string `json:"resources"`
}

// List fetches all learning plans.
func (a *LearningPlanAPI) List(ctx context.Context, token string) ([]models.LearningPlan, error) {
	var plans []models.LearningPlan
	if err := a.client.do(ctx, http.MethodGet, "/api/learning-plans", nil, nil, token, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Create stores a new plan under the authoring user and returns the backend's
// copy.
func (a *LearningPlanAPI) Create(ctx context.Context, req *CreatePlanRequest, token string) (*models.LearningPlan, error) {
	var plan models.LearningPlan
	path := "/api/learning-plans/user/" + req.UserID
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update edits a plan.
func (a *LearningPlanAPI) Update(ctx context.Context, planID string, req *UpdatePlanRequest, token string) (*models.LearningPlan, error) {
	var plan models.LearningPlan
	if err := a.client.do(ctx, http.MethodPut, "/api/learning-plans/"+planID, nil, req, token, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Delete removes a plan.
func (a *LearningPlanAPI) Delete(ctx context.Context, planID, token string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/learning-plans/"+planID, nil, nil, token, nil)
}

// AddLike likes a plan and returns the backend's updated copy.
func (a *LearningPlanAPI) AddLike(ctx context.Context, planID string, req *AddLikeRequest, token string) (*models.LearningPlan, error) {
	var plan models.LearningPlan
	path := "/api/learning-plans/" + planID + "/likes"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RemoveLike withdraws the given user's like.
func (a *LearningPlanAPI) RemoveLike(ctx context.Context, planID, userID, token string) error {
	path := "/api/learning-plans/" + planID + "/likes/" + userID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}

// AddComment appends a comment and returns the backend's updated plan.
func (a *LearningPlanAPI) AddComment(ctx context.Context, planID string, req *AddCommentRequest, token string) (*models.LearningPlan, error) {
	var plan models.LearningPlan
	path := "/api/learning-plans/" + planID + "/comments"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateComment edits a comment's content.
func (a *LearningPlanAPI) UpdateComment(ctx context.Context, planID, commentID, content, token string) error {
	path := "/api/learning-plans/" + planID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodPut, path, nil, &UpdateCommentRequest{Content: content}, token, nil)
}

// DeleteComment removes a comment.
func (a *LearningPlanAPI) DeleteComment(ctx context.Context, planID, commentID, token string) error {
	path := "/api/learning-plans/" + planID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}
