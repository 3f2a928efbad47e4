package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/forms"
	"edunity/internal/models"
	"edunity/internal/session"
)

func newPlanBackend() http.Handler {
	plans := []models.LearningPlan{
		{ID: "l1", UserID: "author1", Title: "Go in 30 days", Description: "daily practice"},
		{ID: "l2", UserID: "author2", Title: "Kubernetes basics", Description: "cluster fundamentals"},
	}

	r := chi.NewRouter()
	r.Get("/api/learning-plans", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(plans)
	})
	r.Post("/api/learning-plans/user/{userId}", func(w http.ResponseWriter, req *http.Request) {
		var body api.CreatePlanRequest
		json.NewDecoder(req.Body).Decode(&body)
		plan := models.LearningPlan{
			ID:          "l-new",
			UserID:      chi.URLParam(req, "userId"),
			UserName:    body.UserName,
			Title:       body.Title,
			Description: body.Description,
			Topics:      body.Topics,
			CreatedAt:   time.Now(),
		}
		plans = append(plans, plan)
		json.NewEncoder(w).Encode(plan)
	})
	return r
}

func newTestPlanFeed(t *testing.T) *PlanFeed {
	t.Helper()
	srv := httptest.NewServer(newPlanBackend())
	t.Cleanup(srv.Close)

	client, err := api.New(&api.Config{BaseURL: srv.URL}, zap.NewNop())
	assert.NoError(t, err)
	sess := session.New(models.User{ID: "u1", Name: "Amina"}, "token")
	return NewPlanFeed(client, sess, nil, zap.NewNop())
}

func TestPlanFeedCreatePrepends(t *testing.T) {
	f := newTestPlanFeed(t)
	assert.NoError(t, f.Load(context.Background()))

	form := &forms.PlanForm{
		Title:       "Rust after Go",
		Description: "a comparison-driven plan",
		Topics:      "ownership, lifetimes",
	}
	plan, err := f.Create(context.Background(), form)
	assert.NoError(t, err)
	assert.Equal(t, "l-new", plan.ID)
	assert.Equal(t, "u1", plan.UserID)

	items := f.Items()
	assert.Equal(t, "l-new", items[0].ID, "new plan must appear first")
	assert.Len(t, items, 3)
}

func TestPlanFeedCreateValidatesFirst(t *testing.T) {
	f := newTestPlanFeed(t)
	assert.NoError(t, f.Load(context.Background()))

	_, err := f.Create(context.Background(), &forms.PlanForm{Title: "no description"})
	assert.Error(t, err)
	assert.Len(t, f.Items(), 2, "invalid form must not reach the backend")
}

func TestPlanFeedSearchMatchesTitleAndDescription(t *testing.T) {
	f := newTestPlanFeed(t)
	assert.NoError(t, f.Load(context.Background()))

	assert.NoError(t, f.Search(context.Background(), "cluster"))
	items := f.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "l2", items[0].ID)
}
