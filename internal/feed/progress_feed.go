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

// ProgressFeed drives the learning-progress feed. Entries come from the
// template-driven progress form; everything else mirrors the other feeds.
type ProgressFeed struct {
	mu      sync.Mutex
	items   []models.LearningProgress
	loading bool
	term    string

	api    *api.LearningProgressAPI
	sess   *session.Session
	store  store.Store
	logger *zap.Logger
}

// NewProgressFeed creates the controller.
func NewProgressFeed(client *api.Client, sess *session.Session, st store.Store, logger *zap.Logger) *ProgressFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressFeed{
		api:    client.LearningProgress(),
		sess:   sess,
		store:  st,
		logger: logger,
	}
}

// Load fetches all progress entries, replacing local state and any active
// search filter.
func (f *ProgressFeed) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	entries, err := f.api.List(ctx, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to load progress entries", zap.Error(err))
		return err
	}

	f.mu.Lock()
	f.items = entries
	f.term = ""
	f.mu.Unlock()

	for i := range entries {
		f.writeThrough(ctx, &entries[i])
	}
	return nil
}

// Items returns a copy of the current entries.
func (f *ProgressFeed) Items() []models.LearningProgress {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LearningProgress, len(f.items))
	copy(out, f.items)
	return out
}

// Loading reports whether a Load is in flight.
func (f *ProgressFeed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// SearchTerm returns the active search filter, or "".
func (f *ProgressFeed) SearchTerm() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.term
}

// Get returns the controller's copy of one entry.
func (f *ProgressFeed) Get(progressID string) (*models.LearningProgress, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(progressID); i >= 0 {
		entry := f.items[i]
		return &entry, true
	}
	return nil, false
}

// Create submits the progress form and prepends the backend's copy. The form
// is reset only on success.
func (f *ProgressFeed) Create(ctx context.Context, form *forms.ProgressForm) (*models.LearningProgress, error) {
	req, err := form.BuildRequest(f.sess)
	if err != nil {
		return nil, err
	}

	entry, err := f.api.Create(ctx, req, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to create progress entry", zap.Error(err))
		return nil, err
	}

	f.mu.Lock()
	f.items = append([]models.LearningProgress{*entry}, f.items...)
	f.mu.Unlock()
	f.writeThrough(ctx, entry)
	form.Reset()
	return entry, nil
}

// ToggleLike flips the session user's like on an entry, optimistically,
// rolling back to the pre-call snapshot on failure.
func (f *ProgressFeed) ToggleLike(ctx context.Context, progressID string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to like an entry")
	}
	userID := f.sess.UserID()

	f.mu.Lock()
	i := f.index(progressID)
	if i < 0 {
		f.mu.Unlock()
		return ErrNotFound
	}
	snapshot := cloneLikes(f.items[i].Likes)
	likes, liked := toggleLike(f.items[i].Likes, userID, models.Like{UserID: userID, CreatedAt: time.Now()})
	f.items[i].Likes = likes
	f.mu.Unlock()

	var err error
	var updated *models.LearningProgress
	if liked {
		updated, err = f.api.AddLike(ctx, progressID, &api.AddLikeRequest{UserID: userID, UserName: f.sess.User.Name}, f.sess.Token)
	} else {
		err = f.api.RemoveLike(ctx, progressID, userID, f.sess.Token)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i = f.index(progressID)
	if i < 0 {
		return err
	}
	if err != nil {
		f.items[i].Likes = snapshot
		f.logger.Warn("Like toggle rolled back", zap.String("progressId", progressID), zap.Error(err))
		return err
	}
	if updated != nil {
		f.items[i] = *updated
	}
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// AddComment posts a comment and swaps in the backend's updated entry.
func (f *ProgressFeed) AddComment(ctx context.Context, progressID, content string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to comment")
	}
	req := &api.AddCommentRequest{
		Content:  content,
		UserID:   f.sess.User.ID,
		UserName: f.sess.User.Name,
	}
	updated, err := f.api.AddComment(ctx, progressID, req, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to add comment", zap.String("progressId", progressID), zap.Error(err))
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// UpdateComment edits a comment, backend first, patching only the target.
func (f *ProgressFeed) UpdateComment(ctx context.Context, progressID, commentID, content string) error {
	if err := f.api.UpdateComment(ctx, progressID, commentID, content, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(progressID)
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
func (f *ProgressFeed) DeleteComment(ctx context.Context, progressID, commentID string) error {
	if err := f.api.DeleteComment(ctx, progressID, commentID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(progressID)
	if i < 0 {
		return ErrNotFound
	}
	f.items[i].Comments = removeComment(f.items[i].Comments, commentID)
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// Update edits an entry through the edit modal payload.
func (f *ProgressFeed) Update(ctx context.Context, progressID string, req *api.UpdateProgressRequest) error {
	updated, err := f.api.Update(ctx, progressID, req, f.sess.Token)
	if err != nil {
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// Delete removes an entry from the backend and the local feed.
func (f *ProgressFeed) Delete(ctx context.Context, progressID string) error {
	if err := f.api.Delete(ctx, progressID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	if i := f.index(progressID); i >= 0 {
		f.items = append(f.items[:i:i], f.items[i+1:]...)
	}
	f.mu.Unlock()

	if f.store != nil {
		if err := f.store.Delete(ctx, store.ProgressKey(progressID)); err != nil {
			f.logger.Warn("Store delete failed", zap.String("progressId", progressID), zap.Error(err))
		}
	}
	return nil
}

// Search filters loaded entries by title, case-insensitively. Clearing the
// term re-fetches from the backend.
func (f *ProgressFeed) Search(ctx context.Context, term string) error {
	if term == "" {
		return f.Load(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := f.items[:0:0]
	for _, e := range f.items {
		if containsFold(e.Title, term) {
			filtered = append(filtered, e)
		}
	}
	f.items = filtered
	f.term = term
	return nil
}

func (f *ProgressFeed) index(progressID string) int {
	for i := range f.items {
		if f.items[i].ID == progressID {
			return i
		}
	}
	return -1
}

func (f *ProgressFeed) replace(ctx context.Context, entry *models.LearningProgress) {
	f.mu.Lock()
	if i := f.index(entry.ID); i >= 0 {
		f.items[i] = *entry
	}
	f.mu.Unlock()
	f.writeThrough(ctx, entry)
}

func (f *ProgressFeed) writeThrough(ctx context.Context, entry *models.LearningProgress) {
	if f.store == nil {
		return
	}
	if err := f.store.Set(ctx, store.ProgressKey(entry.ID), entry, 0); err != nil {
		f.logger.Warn("Store write failed", zap.String("progressId", entry.ID), zap.Error(err))
	}
}
