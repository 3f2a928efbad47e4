package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"edunity/internal/media"
	"edunity/internal/models"
)

// SkillPostAPI wraps the skill-sharing post endpoints.
type SkillPostAPI struct {
	client *Client
}

// UpdatePostRequest is the edit-modal payload. MediaURLs replaces the post's
// media wholesale; marshalling standardizes every ref to the envelope form.
type UpdatePostRequest struct {
	Description string            `json:"description"`
	MediaURLs   []models.MediaRef `json:"mediaUrls"`
}

// AddLikeRequest registers a like by the given user.
type AddLikeRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// AddCommentRequest adds a comment authored by the given user.
type AddCommentRequest struct {
	Content  string `json:"content"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// UpdateCommentRequest replaces a comment's content.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// List fetches the whole skill-sharing feed.
func (a *SkillPostAPI) List(ctx context.Context, token string) ([]models.SkillPost, error) {
	var posts []models.SkillPost
	if err := a.client.do(ctx, http.MethodGet, "/api/posts", nil, nil, token, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Create uploads a new post as multipart form data: a description field plus
// up to three media files. The backend echoes the created post.
func (a *SkillPostAPI) Create(ctx context.Context, description string, files []media.Attachment, token string) (*models.SkillPost, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", description); err != nil {
		return nil, NewValidationError("failed to encode description", err)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, NewValidationError("failed to encode media file", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, NewValidationError("failed to encode media file", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, NewValidationError("failed to finalize upload", err)
	}

	var post models.SkillPost
	if err := a.client.doMultipart(ctx, "/api/posts", &buf, w.FormDataContentType(), token, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces a post's description and (optionally) its media.
func (a *SkillPostAPI) Update(ctx context.Context, postID string, req *UpdatePostRequest, token string) (*models.SkillPost, error) {
	var post models.SkillPost
	path := "/api/posts/" + postID
	if err := a.client.do(ctx, http.MethodPut, path, nil, req, token, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post.
func (a *SkillPostAPI) Delete(ctx context.Context, postID, token string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/posts/"+postID, nil, nil, token, nil)
}

// AddLike likes a post and returns the backend's updated copy.
func (a *SkillPostAPI) AddLike(ctx context.Context, postID string, req *AddLikeRequest, token string) (*models.SkillPost, error) {
	var post models.SkillPost
	path := "/api/posts/" + postID + "/likes"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RemoveLike withdraws the given user's like.
func (a *SkillPostAPI) RemoveLike(ctx context.Context, postID, userID, token string) error {
	path := "/api/posts/" + postID + "/likes/" + userID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}

// AddComment appends a comment and returns the backend's updated post, whose
// comment ids and timestamps are authoritative.
func (a *SkillPostAPI) AddComment(ctx context.Context, postID string, req *AddCommentRequest, token string) (*models.SkillPost, error) {
	var post models.SkillPost
	path := "/api/posts/" + postID + "/comments"
	if err := a.client.do(ctx, http.MethodPost, path, nil, req, token, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateComment edits a comment's content.
func (a *SkillPostAPI) UpdateComment(ctx context.Context, postID, commentID, content, token string) error {
	path := "/api/posts/" + postID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodPut, path, nil, &UpdateCommentRequest{Content: content}, token, nil)
}

// DeleteComment removes a comment.
func (a *SkillPostAPI) DeleteComment(ctx context.Context, postID, commentID, token string) error {
	path := "/api/posts/" + postID + "/comments/" + commentID
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, token, nil)
}
