package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"edunity/internal/api"
	"edunity/internal/models"
	"edunity/internal/session"
)

type userBackend struct {
	users       []models.User
	failFollows bool
	followed    []string
	unfollowed  []string
}

func (b *userBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/users", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(b.users)
	})
	r.Put("/api/users/{id}/follow", func(w http.ResponseWriter, req *http.Request) {
		if b.failFollows {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		b.followed = append(b.followed, chi.URLParam(req, "id"))
		w.WriteHeader(http.StatusOK)
	})
	r.Put("/api/users/{id}/unfollow", func(w http.ResponseWriter, req *http.Request) {
		if b.failFollows {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		b.unfollowed = append(b.unfollowed, chi.URLParam(req, "id"))
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func newTestPanel(t *testing.T, b *userBackend) *FollowPanel {
	t.Helper()
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	client, err := api.New(&api.Config{BaseURL: srv.URL}, zap.NewNop())
	assert.NoError(t, err)

	sess := session.New(models.User{ID: "u1", Name: "Amina", FollowingUsers: []string{"u3"}}, "token")
	return NewFollowPanel(client, sess, zap.NewNop())
}

func seedUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Amina"},
		{ID: "u2", Name: "Ken"},
		{ID: "u3", Name: "Joy"},
	}
}

func TestLoadExcludesSelf(t *testing.T) {
	b := &userBackend{users: seedUsers()}
	p := newTestPanel(t, b)

	assert.NoError(t, p.Load(context.Background()))

	suggestions := p.Suggestions()
	assert.Len(t, suggestions, 2)
	for _, u := range suggestions {
		assert.NotEqual(t, "u1", u.ID)
	}
}

func TestFollowingSeededFromSession(t *testing.T) {
	b := &userBackend{users: seedUsers()}
	p := newTestPanel(t, b)

	assert.True(t, p.IsFollowing("u3"))
	assert.False(t, p.IsFollowing("u2"))
}

func TestToggleFlipsAfterResolve(t *testing.T) {
	b := &userBackend{users: seedUsers()}
	p := newTestPanel(t, b)
	assert.NoError(t, p.Load(context.Background()))

	assert.NoError(t, p.Toggle(context.Background(), "u2"))
	assert.True(t, p.IsFollowing("u2"))
	assert.Equal(t, []string{"u2"}, b.followed)

	assert.NoError(t, p.Toggle(context.Background(), "u2"))
	assert.False(t, p.IsFollowing("u2"))
	assert.Equal(t, []string{"u2"}, b.unfollowed)
}

func TestToggleFailureLeavesStateUnchanged(t *testing.T) {
	b := &userBackend{users: seedUsers(), failFollows: true}
	p := newTestPanel(t, b)
	assert.NoError(t, p.Load(context.Background()))

	assert.Error(t, p.Toggle(context.Background(), "u2"))
	assert.False(t, p.IsFollowing("u2"), "a failed follow must not flip the button")

	assert.Error(t, p.Toggle(context.Background(), "u3"))
	assert.True(t, p.IsFollowing("u3"), "a failed unfollow must stay following")
}

func TestIgnoreHidesSuggestionLocally(t *testing.T) {
	b := &userBackend{users: seedUsers()}
	p := newTestPanel(t, b)
	assert.NoError(t, p.Load(context.Background()))

	p.Ignore("u2")

	suggestions := p.Suggestions()
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "u3", suggestions[0].ID)
}

func TestToggleRequiresLogin(t *testing.T) {
	b := &userBackend{users: seedUsers()}
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	client, err := api.New(&api.Config{BaseURL: srv.URL}, zap.NewNop())
	assert.NoError(t, err)
	p := NewFollowPanel(client, session.Anonymous(), zap.NewNop())

	assert.Error(t, p.Toggle(context.Background(), "u2"))
	assert.Empty(t, b.followed)
}
