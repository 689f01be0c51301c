// Package intel maintains the cached news digest served alongside the
// orchestrator. The digest is process-scoped state with an explicit
// time-to-live and last-writer-wins refresh semantics.
package intel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kryonis/lazysusan/pkg/models"
)

// ErrNotFound indicates no snapshot is stored for the language.
var ErrNotFound = errors.New("no digest snapshot")

// Item is one news digest entry.
type Item struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Time       string `json:"time"`
}

// Snapshot is the stored digest for one language.
type Snapshot struct {
	Items      []Item    `json:"items"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Store persists digest snapshots per language. Concurrent writers are
// tolerated with last-writer-wins semantics; a duplicate refresh is
// idempotent, not a correctness bug.
type Store interface {
	Get(ctx context.Context, lang models.Language) (Snapshot, error)
	Put(ctx context.Context, lang models.Language, snap Snapshot) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[models.Language]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[models.Language]Snapshot)}
}

// Get returns the stored snapshot or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, lang models.Language) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[lang]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Put stores the snapshot, replacing any previous one.
func (s *MemoryStore) Put(_ context.Context, lang models.Language, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[lang] = snap
	return nil
}

// RedisStore keeps snapshots in Redis so multiple instances share one
// digest.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func digestKey(lang models.Language) string {
	return "lazysusan:digest:" + string(lang)
}

// Get returns the stored snapshot or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, lang models.Language) (Snapshot, error) {
	raw, err := s.client.Get(ctx, digestKey(lang)).Result()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get digest: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode digest: %w", err)
	}
	return snap, nil
}

// Put stores the snapshot, replacing any previous one.
func (s *RedisStore) Put(ctx context.Context, lang models.Language, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	// No Redis-side expiry: staleness is decided by the feed from
	// LastUpdate, and an expired key would drop the stale-serving
	// fallback.
	if err := s.client.Set(ctx, digestKey(lang), raw, 0).Err(); err != nil {
		return fmt.Errorf("put digest: %w", err)
	}
	return nil
}
