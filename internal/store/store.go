// Package store is the shared client-side entity store: a key-by-id map with
// subscription so every view reads one source of truth instead of holding a
// private copy that can go stale.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ===============================
// STORE INTERFACE
// ===============================

// Op distinguishes watch events.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Event notifies a watcher of a change to a key.
type Event struct {
	Key   string
	Op    Op
	Value json.RawMessage
}

// Store defines the entity store interface. Values are JSON-serialized so
// the memory and Redis providers behave identically.
type Store interface {
	// Get unmarshals the stored value for key into out.
	Get(ctx context.Context, key string, out any) (bool, error)
	// Set stores value under key with the given TTL (0 means the default).
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes a key.
	Delete(ctx context.Context, key string) error
	// Watch subscribes to changes of one key. The returned cancel func must
	// be called to release the subscription.
	Watch(key string) (<-chan Event, func())
	// Stats reports hit/miss counters.
	Stats() *Stats
	Close() error
}

// Stats represents store statistics.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
	Keys    int64 `json:"keys"`
}

// Entity key helpers shared by controllers.
func PostKey(id string) string     { return "post:" + id }
func PlanKey(id string) string     { return "plan:" + id }
func ProgressKey(id string) string { return "progress:" + id }
func UserKey(id string) string     { return "user:" + id }

// ===============================
// CONFIGURATION
// ===============================

// Config holds store configuration.
type Config struct {
	Provider        string        `json:"provider"` // "memory", "redis"
	TTL             time.Duration `json:"ttl"`
	MaxKeys         int           `json:"max_keys"`
	CleanupInterval time.Duration `json:"cleanup_interval"`

	// Redis configuration
	RedisURL      string `json:"redis_url"`
	RedisDB       int    `json:"redis_db"`
	RedisPassword string `json:"redis_password"`
	PoolSize      int    `json:"pool_size"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:        "memory",
		TTL:             15 * time.Minute,
		MaxKeys:         10000,
		CleanupInterval: 5 * time.Minute,
		PoolSize:        10,
	}
}

// New creates a store for the configured provider.
func New(config *Config, logger *zap.Logger) (Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	switch config.Provider {
	case "", "memory":
		return newMemoryStore(config, logger), nil
	case "redis":
		return newRedisStore(config, logger)
	default:
		return nil, fmt.Errorf("unknown store provider: %s", config.Provider)
	}
}

// ===============================
// WATCHER REGISTRY
// ===============================

type watchRegistry struct {
	mu       sync.Mutex
	watchers map[string]map[int]chan Event
	nextID   int
}

func newWatchRegistry() *watchRegistry {
	return &watchRegistry{watchers: make(map[string]map[int]chan Event)}
}

func (r *watchRegistry) add(key string) (<-chan Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, 8)
	id := r.nextID
	r.nextID++
	if r.watchers[key] == nil {
		r.watchers[key] = make(map[int]chan Event)
	}
	r.watchers[key][id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if set, ok := r.watchers[key]; ok {
			if c, ok := set[id]; ok {
				delete(set, id)
				close(c)
			}
			if len(set) == 0 {
				delete(r.watchers, key)
			}
		}
	}
	return ch, cancel
}

// notify delivers an event without blocking; slow watchers drop events.
func (r *watchRegistry) notify(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.watchers[ev.Key] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (r *watchRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, set := range r.watchers {
		for id, ch := range set {
			delete(set, id)
			close(ch)
		}
		delete(r.watchers, key)
	}
}

// ===============================
// MEMORY STORE IMPLEMENTATION
// ===============================

type memoryStore struct {
	mu         sync.RWMutex
	items      map[string]*storeItem
	maxKeys    int
	defaultTTL time.Duration
	logger     *zap.Logger
	stats      Stats
	watch      *watchRegistry
	stopCh     chan struct{}
	stopOnce   sync.Once
}

type storeItem struct {
	Data       json.RawMessage
	ExpiresAt  time.Time
	AccessedAt time.Time
}

func newMemoryStore(config *Config, logger *zap.Logger) *memoryStore {
	s := &memoryStore{
		items:      make(map[string]*storeItem),
		maxKeys:    config.MaxKeys,
		defaultTTL: config.TTL,
		logger:     logger,
		watch:      newWatchRegistry(),
		stopCh:     make(chan struct{}),
	}
	go s.cleanup(config.CleanupInterval)
	return s
}

func (s *memoryStore) Get(ctx context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		if exists {
			delete(s.items, key)
		}
		s.stats.Misses++
		return false, nil
	}

	item.AccessedAt = time.Now()
	s.stats.Hits++
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(item.Data, out); err != nil {
		return false, fmt.Errorf("store: decode %q: %w", key, err)
	}
	return true, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	if len(s.items) >= s.maxKeys {
		s.evictOldest()
	}
	now := time.Now()
	s.items[key] = &storeItem{Data: data, ExpiresAt: now.Add(ttl), AccessedAt: now}
	s.stats.Sets++
	s.mu.Unlock()

	s.watch.notify(Event{Key: key, Op: OpSet, Value: data})
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.items[key]
	delete(s.items, key)
	if existed {
		s.stats.Deletes++
	}
	s.mu.Unlock()

	if existed {
		s.watch.notify(Event{Key: key, Op: OpDelete})
	}
	return nil
}

func (s *memoryStore) Watch(key string) (<-chan Event, func()) {
	return s.watch.add(key)
}

func (s *memoryStore) Stats() *Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := s.stats
	stats.Keys = int64(len(s.items))
	return &stats
}

func (s *memoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.watch.closeAll()
	})
	return nil
}

// evictOldest drops the least recently accessed entry. Caller holds the lock.
func (s *memoryStore) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, item := range s.items {
		if oldestKey == "" || item.AccessedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = item.AccessedAt
		}
	}
	if oldestKey != "" {
		delete(s.items, oldestKey)
	}
}

func (s *memoryStore) cleanup(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, item := range s.items {
				if now.After(item.ExpiresAt) {
					delete(s.items, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// ===============================
// REDIS STORE IMPLEMENTATION
// ===============================

const redisChannelPrefix = "edunity:store:"

type redisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     *zap.Logger
	mu         sync.Mutex
	stats      Stats
}

func newRedisStore(config *Config, logger *zap.Logger) (*redisStore, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("store: invalid redis URL: %w", err)
	}
	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	opts.DB = config.RedisDB
	opts.PoolSize = config.PoolSize

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: redis ping failed: %w", err)
	}

	logger.Info("Redis store connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &redisStore{client: client, defaultTTL: config.TTL, logger: logger}, nil
}

func (s *redisStore) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		s.count(func(st *Stats) { st.Misses++ })
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: redis get %q: %w", key, err)
	}
	s.count(func(st *Stats) { st.Hits++ })
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("store: decode %q: %w", key, err)
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("store: redis set %q: %w", key, err)
	}
	s.count(func(st *Stats) { st.Sets++ })

	// Best effort change notification for watchers in other processes.
	if err := s.client.Publish(ctx, redisChannelPrefix+key, data).Err(); err != nil {
		s.logger.Warn("Failed to publish store event", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("store: redis del %q: %w", key, err)
	}
	s.count(func(st *Stats) { st.Deletes++ })
	if err := s.client.Publish(ctx, redisChannelPrefix+key, nil).Err(); err != nil {
		s.logger.Warn("Failed to publish store event", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Watch subscribes to the key's pub/sub channel. Deletions arrive as events
// with an empty value.
func (s *redisStore) Watch(key string) (<-chan Event, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := s.client.Subscribe(ctx, redisChannelPrefix+key)
	out := make(chan Event, 8)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			ev := Event{Key: key, Op: OpSet, Value: json.RawMessage(msg.Payload)}
			if len(msg.Payload) == 0 {
				ev.Op = OpDelete
				ev.Value = nil
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() {
		cancel()
		_ = sub.Close()
	}
}

func (s *redisStore) Stats() *Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	return &stats
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

func (s *redisStore) count(fn func(*Stats)) {
	s.mu.Lock()
	fn(&s.stats)
	s.mu.Unlock()
}
