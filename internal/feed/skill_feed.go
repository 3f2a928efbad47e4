package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/forms"
	"edunity/internal/models"
	"edunity/internal/session"
	"edunity/internal/store"
)

// SkillFeed drives the skill-sharing feed: load, create, like, comment,
// edit, delete and search over skill posts.
//
// Like toggles apply optimistically and roll back to the pre-call snapshot
// when the backend rejects the call. Comment edits and deletes resolve
// against the backend first and patch local state after.
type SkillFeed struct {
	mu      sync.Mutex
	items   []models.SkillPost
	loading bool
	term    string

	api    *api.SkillPostAPI
	sess   *session.Session
	store  store.Store
	logger *zap.Logger
}

// NewSkillFeed creates the controller. The store may be nil when no
// write-through is wanted.
func NewSkillFeed(client *api.Client, sess *session.Session, st store.Store, logger *zap.Logger) *SkillFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillFeed{
		api:    client.SkillPosts(),
		sess:   sess,
		store:  st,
		logger: logger,
	}
}

// Load fetches the full feed from the backend, replacing local state and any
// active search filter.
func (f *SkillFeed) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	posts, err := f.api.List(ctx, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to load skill posts", zap.Error(err))
		return err
	}

	f.mu.Lock()
	f.items = posts
	f.term = ""
	f.mu.Unlock()

	for i := range posts {
		f.writeThrough(ctx, &posts[i])
	}
	f.logger.Debug("Skill feed loaded", zap.Int("count", len(posts)))
	return nil
}

// Items returns a copy of the current feed items.
func (f *SkillFeed) Items() []models.SkillPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SkillPost, len(f.items))
	copy(out, f.items)
	return out
}

// Loading reports whether a Load is in flight.
func (f *SkillFeed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// SearchTerm returns the active search filter, or "".
func (f *SkillFeed) SearchTerm() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.term
}

// Get returns the controller's copy of one post.
func (f *SkillFeed) Get(postID string) (*models.SkillPost, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(postID); i >= 0 {
		post := f.items[i]
		return &post, true
	}
	return nil, false
}

// Create validates the form, uploads the post and prepends the backend's copy
// to the feed.
func (f *SkillFeed) Create(ctx context.Context, form *forms.PostForm) (*models.SkillPost, error) {
	if !f.sess.LoggedIn() {
		return nil, forms.NewFieldError("session", "you must be logged in to share a post")
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	files, err := form.Attachments()
	if err != nil {
		return nil, err
	}

	post, err := f.api.Create(ctx, form.Description, files, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to create skill post", zap.Error(err))
		return nil, err
	}

	f.mu.Lock()
	f.items = append([]models.SkillPost{*post}, f.items...)
	f.mu.Unlock()
	f.writeThrough(ctx, post)
	return post, nil
}

// ToggleLike flips the session user's like on a post. The flip shows
// immediately; when the backend call fails the post's likes are restored to
// the exact pre-call snapshot.
func (f *SkillFeed) ToggleLike(ctx context.Context, postID string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to like a post")
	}
	userID := f.sess.UserID()

	f.mu.Lock()
	i := f.index(postID)
	if i < 0 {
		f.mu.Unlock()
		return ErrNotFound
	}
	snapshot := cloneLikes(f.items[i].Likes)
	likes, liked := toggleLike(f.items[i].Likes, userID, models.Like{UserID: userID, CreatedAt: time.Now()})
	f.items[i].Likes = likes
	f.mu.Unlock()

	var err error
	var updated *models.SkillPost
	if liked {
		updated, err = f.api.AddLike(ctx, postID, &api.AddLikeRequest{UserID: userID, UserName: f.sess.User.Name}, f.sess.Token)
	} else {
		err = f.api.RemoveLike(ctx, postID, userID, f.sess.Token)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i = f.index(postID)
	if i < 0 {
		return err
	}
	if err != nil {
		f.items[i].Likes = snapshot
		f.logger.Warn("Like toggle rolled back", zap.String("postId", postID), zap.Error(err))
		return err
	}
	if updated != nil {
		f.items[i] = *updated
	}
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// AddComment posts a comment and replaces the local post with the backend's
// updated copy, whose comment ids and timestamps are authoritative.
func (f *SkillFeed) AddComment(ctx context.Context, postID, content string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to comment")
	}
	req := &api.AddCommentRequest{
		Content:  content,
		UserID:   f.sess.User.ID,
		UserName: f.sess.User.Name,
	}
	updated, err := f.api.AddComment(ctx, postID, req, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to add comment", zap.String("postId", postID), zap.Error(err))
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// UpdateComment edits a comment. The backend resolves first; on success only
// the target comment is patched locally and stamped as edited.
func (f *SkillFeed) UpdateComment(ctx context.Context, postID, commentID, content string) error {
	if err := f.api.UpdateComment(ctx, postID, commentID, content, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(postID)
	if i < 0 {
		return ErrNotFound
	}
	now := time.Now()
	for j := range f.items[i].Comments {
		if f.items[i].Comments[j].ID == commentID {
			f.items[i].Comments[j].Content = content
			f.items[i].Comments[j].UpdatedAt = &now
			break
		}
	}
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// DeleteComment removes a comment, preserving the order of the rest.
func (f *SkillFeed) DeleteComment(ctx context.Context, postID, commentID string) error {
	if err := f.api.DeleteComment(ctx, postID, commentID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(postID)
	if i < 0 {
		return ErrNotFound
	}
	f.items[i].Comments = removeComment(f.items[i].Comments, commentID)
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// Update edits a post's description and media through the edit modal payload.
func (f *SkillFeed) Update(ctx context.Context, postID string, req *api.UpdatePostRequest) error {
	updated, err := f.api.Update(ctx, postID, req, f.sess.Token)
	if err != nil {
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// Delete removes a post from the backend and the local feed.
func (f *SkillFeed) Delete(ctx context.Context, postID string) error {
	if err := f.api.Delete(ctx, postID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	if i := f.index(postID); i >= 0 {
		f.items = append(f.items[:i:i], f.items[i+1:]...)
	}
	f.mu.Unlock()

	if f.store != nil {
		if err := f.store.Delete(ctx, store.PostKey(postID)); err != nil {
			f.logger.Warn("Store delete failed", zap.String("postId", postID), zap.Error(err))
		}
	}
	return nil
}

// Search filters the loaded items by a case-insensitive substring match on
// the description. The filter replaces the in-memory list; clearing the term
// re-fetches the feed from the backend.
func (f *SkillFeed) Search(ctx context.Context, term string) error {
	if term == "" {
		return f.Load(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := f.items[:0:0]
	for _, p := range f.items {
		if containsFold(p.Description, term) {
			filtered = append(filtered, p)
		}
	}
	f.items = filtered
	f.term = term
	return nil
}

// index finds a post by id. Caller holds the lock.
func (f *SkillFeed) index(postID string) int {
	for i := range f.items {
		if f.items[i].ID == postID {
			return i
		}
	}
	return -1
}

// replace swaps the local copy of a post for the backend's copy.
func (f *SkillFeed) replace(ctx context.Context, post *models.SkillPost) {
	f.mu.Lock()
	if i := f.index(post.ID); i >= 0 {
		f.items[i] = *post
	}
	f.mu.Unlock()
	f.writeThrough(ctx, post)
}

func (f *SkillFeed) writeThrough(ctx context.Context, post *models.SkillPost) {
	if f.store == nil {
		return
	}
	if err := f.store.Set(ctx, store.PostKey(post.ID), post, 0); err != nil {
		f.logger.Warn("Store write failed", zap.String("postId", post.ID), zap.Error(err))
	}
}
