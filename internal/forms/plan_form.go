package forms

import (
	"strings"

	"edunity/internal/api"
	"edunity/internal/session"
)

// PlanForm collects the learning-plan creation inputs. Topics and Resources
// stay comma-separated strings, matching the backend representation.
type PlanForm struct {
	Title       string
	Description string
	Topics      string
	Resources   string
}

// Validate checks required fields after trimming, before any network call.
func (f *PlanForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return NewFieldError("title", "title is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		return NewFieldError("description", "description is required")
	}
	return nil
}

// BuildRequest assembles the creation payload from the form and the session
// identity.
func (f *PlanForm) BuildRequest(sess *session.Session) (*api.CreatePlanRequest, error) {
	if !sess.LoggedIn() {
		return nil, NewFieldError("session", "you must be logged in to share a learning plan")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	req := &api.CreatePlanRequest{
		UserID:           sess.User.ID,
		UserName:         sess.User.Name,
		UserProfileImage: sess.User.ProfileImage,
		Title:            f.Title,
		Description:      f.Description,
		Topics:           f.Topics,
		Resources:        f.Resources,
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Reset clears all fields.
func (f *PlanForm) Reset() {
	*f = PlanForm{}
}
