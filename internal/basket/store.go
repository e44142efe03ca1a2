package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgredis "github.com/medimarket/storefront-backend/pkg/redis"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// Baskets outlive a single visit but not an abandoned one.
const snapshotTTL = 30 * 24 * time.Hour

// RedisStore keeps one JSON snapshot per user. Decimal values survive the
// round-trip because they marshal as strings.
type RedisStore struct {
	client *pkgredis.Client
}

func NewRedisStore(client *pkgredis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, userID uuid.UUID) ([]types.BasketItem, error) {
	raw, err := s.client.Get(ctx, s.client.BasketKey(userID.String()))
	if err != nil {
		if pkgredis.IsMiss(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load basket snapshot: %w", err)
	}

	var items []types.BasketItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode basket snapshot: %w", err)
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, items []types.BasketItem) error {
	key := s.client.BasketKey(userID.String())
	if len(items) == 0 {
		return s.client.Del(ctx, key)
	}

	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode basket snapshot: %w", err)
	}
	if err := s.client.Set(ctx, key, string(buf), snapshotTTL); err != nil {
		return fmt.Errorf("save basket snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, s.client.BasketKey(userID.String()))
}

// MemoryStore backs tests and single-instance development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	baskets map[uuid.UUID][]types.BasketItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{baskets: make(map[uuid.UUID][]types.BasketItem)}
}

func (s *MemoryStore) Load(_ context.Context, userID uuid.UUID) ([]types.BasketItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.baskets[userID]
	copied := make([]types.BasketItem, len(items))
	copy(copied, items)
	return copied, nil
}

func (s *MemoryStore) Save(_ context.Context, userID uuid.UUID, items []types.BasketItem) error {
	copied := make([]types.BasketItem, len(items))
	copy(copied, items)
	s.mu.Lock()
	s.baskets[userID] = copied
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.baskets, userID)
	s.mu.Unlock()
	return nil
}
