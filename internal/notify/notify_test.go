package notify

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

type notifyBackend struct {
	items     []models.Notification
	readCalls []string
	failRead  bool
}

func (b *notifyBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/notifications", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(b.items)
	})
	r.Put("/api/notifications/{id}/read", func(w http.ResponseWriter, req *http.Request) {
		if b.failRead {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		b.readCalls = append(b.readCalls, chi.URLParam(req, "id"))
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func newTestInbox(t *testing.T, b *notifyBackend) *Inbox {
	t.Helper()
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	client, err := api.New(&api.Config{BaseURL: srv.URL}, zap.NewNop())
	assert.NoError(t, err)
	sess := session.New(models.User{ID: "u1"}, "token")
	return NewInbox(client, sess, zap.NewNop())
}

func seedNotifications() []models.Notification {
	return []models.Notification{
		{ID: "n1", UserID: "u1", Type: "like", Message: "Ken liked your post", RelatedPostID: "p1"},
		{ID: "n2", UserID: "u1", Type: "comment", Message: "Joy commented", RelatedPostID: "p2", Read: true},
		{ID: "n3", UserID: "u1", Type: "like", Message: "Bea liked your post", RelatedPostID: "p3"},
	}
}

func TestInboxLoadAndUnreadCount(t *testing.T) {
	b := &notifyBackend{items: seedNotifications()}
	in := newTestInbox(t, b)

	assert.NoError(t, in.Load(context.Background()))
	assert.Len(t, in.Items(), 3)
	assert.Equal(t, 2, in.UnreadCount())
}

func TestOpenMarksReadAndResolvesTarget(t *testing.T) {
	b := &notifyBackend{items: seedNotifications()}
	in := newTestInbox(t, b)
	assert.NoError(t, in.Load(context.Background()))

	target, err := in.Open(context.Background(), "n1")
	assert.NoError(t, err)
	assert.Equal(t, "/posts/p1", target)
	assert.Equal(t, []string{"n1"}, b.readCalls)
	assert.Equal(t, 1, in.UnreadCount())
}

func TestOpenAlreadyReadSkipsBackend(t *testing.T) {
	b := &notifyBackend{items: seedNotifications()}
	in := newTestInbox(t, b)
	assert.NoError(t, in.Load(context.Background()))

	target, err := in.Open(context.Background(), "n2")
	assert.NoError(t, err)
	assert.Equal(t, "/comments/p2", target)
	assert.Empty(t, b.readCalls)
}

func TestOpenFailureLeavesUnread(t *testing.T) {
	b := &notifyBackend{items: seedNotifications(), failRead: true}
	in := newTestInbox(t, b)
	assert.NoError(t, in.Load(context.Background()))

	_, err := in.Open(context.Background(), "n1")
	assert.Error(t, err)
	assert.Equal(t, 2, in.UnreadCount(), "a failed mark-read must not flip local state")
}

func TestMarkAllRead(t *testing.T) {
	b := &notifyBackend{items: seedNotifications()}
	in := newTestInbox(t, b)
	assert.NoError(t, in.Load(context.Background()))

	assert.NoError(t, in.MarkAllRead(context.Background()))
	assert.Equal(t, 0, in.UnreadCount())
	// Only the two unread ones hit the backend.
	assert.Equal(t, []string{"n1", "n3"}, b.readCalls)
}
