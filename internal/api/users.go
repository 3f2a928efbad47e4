package api

import (
	"context"
	"net/http"

	"edunity/internal/models"
)

// UserAPI wraps the user/profile endpoints.
type UserAPI struct {
	client *Client
}

// UpdateProfileRequest is the edit-profile payload.
type UpdateProfileRequest struct {
	Name         string   `json:"name" validate:"required"`
	Bio          string   `json:"bio"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Skills       []string `json:"skills"`
}

// GetAll fetches every user, for the suggested-users panel.
func (a *UserAPI) GetAll(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := a.client.do(ctx, http.MethodGet, "/api/users", nil, nil, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches one user's profile.
func (a *UserAPI) Get(ctx context.Context, userID, token string) (*models.User, error) {
	var user models.User
	if err := a.client.do(ctx, http.MethodGet, "/api/users/"+userID, nil, nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits the current user's profile and returns the backend's
// copy.
func (a *UserAPI) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest, token string) (*models.User, error) {
	var user models.User
	if err := a.client.do(ctx, http.MethodPut, "/api/users/"+userID, nil, req, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Follow makes the authenticated user follow the target user.
func (a *UserAPI) Follow(ctx context.Context, targetUserID, token string) error {
	return a.client.do(ctx, http.MethodPut, "/api/users/"+targetUserID+"/follow", nil, nil, token, nil)
}

// Unfollow makes the authenticated user unfollow the target user.
func (a *UserAPI) Unfollow(ctx context.Context, targetUserID, token string) error {
	return a.client.do(ctx, http.MethodPut, "/api/users/"+targetUserID+"/unfollow", nil, nil, token, nil)
}
