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

// PlanFeed drives the learning-plan feed. Its behavior mirrors SkillFeed:
// optimistic like toggles with snapshot rollback, backend-first comment
// mutations, destructive search over the loaded list.
type PlanFeed struct {
	mu      sync.Mutex
	items   []models.LearningPlan
	loading bool
	term    string

	api    *api.LearningPlanAPI
	sess   *session.Session
	store  store.Store
	logger *zap.Logger
}

// NewPlanFeed creates the controller.
func NewPlanFeed(client *api.Client, sess *session.Session, st store.Store, logger *zap.Logger) *PlanFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanFeed{
		api:    client.LearningPlans(),
		sess:   sess,
		store:  st,
		logger: logger,
	}
}

// Load fetches all plans, replacing local state and any active search filter.
func (f *PlanFeed) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	plans, err := f.api.List(ctx, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to load learning plans", zap.Error(err))
		return err
	}

	f.mu.Lock()
	f.items = plans
	f.term = ""
	f.mu.Unlock()

	for i := range plans {
		f.writeThrough(ctx, &plans[i])
	}
	return nil
}

// Items returns a copy of the current plans.
func (f *PlanFeed) Items() []models.LearningPlan {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LearningPlan, len(f.items))
	copy(out, f.items)
	return out
}

// Loading reports whether a Load is in flight.
func (f *PlanFeed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// SearchTerm returns the active search filter, or "".
func (f *PlanFeed) SearchTerm() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.term
}

// Get returns the controller's copy of one plan.
func (f *PlanFeed) Get(planID string) (*models.LearningPlan, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(planID); i >= 0 {
		plan := f.items[i]
		return &plan, true
	}
	return nil, false
}

// Create builds the payload from the form and prepends the backend's copy.
func (f *PlanFeed) Create(ctx context.Context, form *forms.PlanForm) (*models.LearningPlan, error) {
	req, err := form.BuildRequest(f.sess)
	if err != nil {
		return nil, err
	}

	plan, err := f.api.Create(ctx, req, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to create learning plan", zap.Error(err))
		return nil, err
	}

	f.mu.Lock()
	f.items = append([]models.LearningPlan{*plan}, f.items...)
	f.mu.Unlock()
	f.writeThrough(ctx, plan)
	return plan, nil
}

// ToggleLike flips the session user's like on a plan, optimistically, rolling
// back to the pre-call snapshot on failure.
func (f *PlanFeed) ToggleLike(ctx context.Context, planID string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to like a plan")
	}
	userID := f.sess.UserID()

	f.mu.Lock()
	i := f.index(planID)
	if i < 0 {
		f.mu.Unlock()
		return ErrNotFound
	}
	snapshot := cloneLikes(f.items[i].Likes)
	likes, liked := toggleLike(f.items[i].Likes, userID, models.Like{UserID: userID, CreatedAt: time.Now()})
	f.items[i].Likes = likes
	f.mu.Unlock()

	var err error
	var updated *models.LearningPlan
	if liked {
		updated, err = f.api.AddLike(ctx, planID, &api.AddLikeRequest{UserID: userID, UserName: f.sess.User.Name}, f.sess.Token)
	} else {
		err = f.api.RemoveLike(ctx, planID, userID, f.sess.Token)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i = f.index(planID)
	if i < 0 {
		return err
	}
	if err != nil {
		f.items[i].Likes = snapshot
		f.logger.Warn("Like toggle rolled back", zap.String("planId", planID), zap.Error(err))
		return err
	}
	if updated != nil {
		f.items[i] = *updated
	}
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// AddComment posts a comment and swaps in the backend's updated plan.
func (f *PlanFeed) AddComment(ctx context.Context, planID, content string) error {
	if !f.sess.LoggedIn() {
		return forms.NewFieldError("session", "you must be logged in to comment")
	}
	req := &api.AddCommentRequest{
		Content:  content,
		UserID:   f.sess.User.ID,
		UserName: f.sess.User.Name,
	}
	updated, err := f.api.AddComment(ctx, planID, req, f.sess.Token)
	if err != nil {
		f.logger.Error("Failed to add comment", zap.String("planId", planID), zap.Error(err))
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// UpdateComment edits a comment, backend first, patching only the target.
func (f *PlanFeed) UpdateComment(ctx context.Context, planID, commentID, content string) error {
	if err := f.api.UpdateComment(ctx, planID, commentID, content, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(planID)
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
func (f *PlanFeed) DeleteComment(ctx context.Context, planID, commentID string) error {
	if err := f.api.DeleteComment(ctx, planID, commentID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(planID)
	if i < 0 {
		return ErrNotFound
	}
	f.items[i].Comments = removeComment(f.items[i].Comments, commentID)
	f.writeThrough(ctx, &f.items[i])
	return nil
}

// Update edits a plan through the edit modal payload.
func (f *PlanFeed) Update(ctx context.Context, planID string, req *api.UpdatePlanRequest) error {
	updated, err := f.api.Update(ctx, planID, req, f.sess.Token)
	if err != nil {
		return err
	}
	f.replace(ctx, updated)
	return nil
}

// Delete removes a plan from the backend and the local feed.
func (f *PlanFeed) Delete(ctx context.Context, planID string) error {
	if err := f.api.Delete(ctx, planID, f.sess.Token); err != nil {
		return err
	}

	f.mu.Lock()
	if i := f.index(planID); i >= 0 {
		f.items = append(f.items[:i:i], f.items[i+1:]...)
	}
	f.mu.Unlock()

	if f.store != nil {
		if err := f.store.Delete(ctx, store.PlanKey(planID)); err != nil {
			f.logger.Warn("Store delete failed", zap.String("planId", planID), zap.Error(err))
		}
	}
	return nil
}

// Search filters loaded plans by title or description, case-insensitively.
// Clearing the term re-fetches from the backend.
func (f *PlanFeed) Search(ctx context.Context, term string) error {
	if term == "" {
		return f.Load(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := f.items[:0:0]
	for _, p := range f.items {
		if containsFold(p.Title, term) || containsFold(p.Description, term) {
			filtered = append(filtered, p)
		}
	}
	f.items = filtered
	f.term = term
	return nil
}

func (f *PlanFeed) index(planID string) int {
	for i := range f.items {
		if f.items[i].ID == planID {
			return i
		}
	}
	return -1
}

func (f *PlanFeed) replace(ctx context.Context, plan *models.LearningPlan) {
	f.mu.Lock()
	if i := f.index(plan.ID); i >= 0 {
		f.items[i] = *plan
	}
	f.mu.Unlock()
	f.writeThrough(ctx, plan)
}

func (f *PlanFeed) writeThrough(ctx context.Context, plan *models.LearningPlan) {
	if f.store == nil {
		return
	}
	if err := f.store.Set(ctx, store.PlanKey(plan.ID), plan, 0); err != nil {
		f.logger.Warn("Store write failed", zap.String("planId", plan.ID), zap.Error(err))
	}
}
