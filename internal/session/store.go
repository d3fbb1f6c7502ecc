package session

import (
	"context"
	"sync"
	"time"

	"github.com/shop-next/internal/cache"

	"github.com/google/uuid"
)

// Store 会话存储接口
type Store interface {
	// Load 加载会话状态，不存在时返回 (nil, nil)
	Load(ctx context.Context, id string) (*State, error)
	// Save 持久化会话状态并刷新过期时间
	Save(ctx context.Context, state *State, ttl time.Duration) error
	// Delete 删除会话
	Delete(ctx context.Context, id string) error
}

// NewSessionID 生成新的会话ID
func NewSessionID() string {
	return uuid.NewString()
}

// NewStore 根据缓存可用性选择存储实现
func NewStore() Store {
	if cache.Enabled() {
		return NewRedisStore()
	}
	return NewMemoryStore()
}

// RedisStore 基于 Redis 的会话存储
type RedisStore struct{}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Load 加载会话状态
func (s *RedisStore) Load(ctx context.Context, id string) (*State, error) {
	var state State
	found, err := cache.GetJSON(ctx, sessionKey(id), &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	state.ID = id
	state.normalize()
	return &state, nil
}

// Save 持久化会话状态
func (s *RedisStore) Save(ctx context.Context, state *State, ttl time.Duration) error {
	return cache.SetJSON(ctx, sessionKey(state.ID), state, ttl)
}

// Delete 删除会话
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return cache.Del(ctx, sessionKey(id))
}

// MemoryStore 进程内会话存储，Redis 不可用时的降级实现
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Load 加载会话状态
func (s *MemoryStore) Load(ctx context.Context, id string) (*State, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, nil
	}
	state := cloneState(&entry.state)
	state.ID = id
	return state, nil
}

// Save 持久化会话状态
func (s *MemoryStore) Save(ctx context.Context, state *State, ttl time.Duration) error {
	entry := memoryEntry{state: *cloneState(state)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[state.ID] = entry
	s.mu.Unlock()
	return nil
}

// Delete 删除会话
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// cloneState 深拷贝会话状态，避免调用方与存储共享映射
func cloneState(state *State) *State {
	clone := NewState(state.ID)
	clone.AppliedPromoCode = state.AppliedPromoCode
	for key, entry := range state.Items {
		clone.Items[key] = entry
	}
	for key, promo := range state.ProductPromos {
		clone.ProductPromos[key] = promo
	}
	return clone
}
