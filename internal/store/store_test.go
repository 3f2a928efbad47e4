package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMemory(t *testing.T) Store {
	t.Helper()
	s, err := New(DefaultConfig(), zap.NewNop())
	assert.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	assert.NoError(t, s.Set(ctx, PostKey("p1"), entity{ID: "p1", Name: "first"}, 0))

	var got entity
	found, err := s.Get(ctx, PostKey("p1"), &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", got.Name)

	found, err = s.Get(ctx, PostKey("missing"), &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	assert.NoError(t, s.Set(ctx, "k", entity{ID: "k"}, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	found, err := s.Get(ctx, "k", nil)
	assert.NoError(t, err)
	assert.False(t, found, "expired entry must read as a miss")
}

func TestMemoryStoreDelete(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	assert.NoError(t, s.Set(ctx, "k", entity{ID: "k"}, 0))
	assert.NoError(t, s.Delete(ctx, "k"))

	found, _ := s.Get(ctx, "k", nil)
	assert.False(t, found)
}

func TestMemoryStoreStats(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	s.Set(ctx, "a", entity{}, 0)
	s.Get(ctx, "a", nil)
	s.Get(ctx, "b", nil)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Keys)
}

func TestMemoryStoreEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxKeys = 2
	s, err := New(cfg, zap.NewNop())
	assert.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "a", entity{}, 0)
	s.Set(ctx, "b", entity{}, 0)
	s.Set(ctx, "c", entity{}, 0)

	assert.LessOrEqual(t, s.Stats().Keys, int64(2))
}

func TestWatchDeliversSetAndDelete(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	ch, cancel := s.Watch("k")
	defer cancel()

	assert.NoError(t, s.Set(ctx, "k", entity{ID: "k", Name: "v"}, 0))
	assert.NoError(t, s.Delete(ctx, "k"))

	ev := <-ch
	assert.Equal(t, OpSet, ev.Op)
	assert.Equal(t, "k", ev.Key)
	assert.NotEmpty(t, ev.Value)

	ev = <-ch
	assert.Equal(t, OpDelete, ev.Op)
	assert.Nil(t, ev.Value)
}

func TestWatchCancelClosesChannel(t *testing.T) {
	s := newMemory(t)

	ch, cancel := s.Watch("k")
	cancel()

	_, open := <-ch
	assert.False(t, open)
}

func TestWatchOtherKeysNotDelivered(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	ch, cancel := s.Watch("k1")
	defer cancel()

	assert.NoError(t, s.Set(ctx, "k2", entity{}, 0))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event for %q", ev.Key)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestUnknownProviderRejected(t *testing.T) {
	_, err := New(&Config{Provider: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}
