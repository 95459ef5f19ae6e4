package redis

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    string
	expireAt time.Time // 零值表示不过期
}

// MemoryCache 进程内缓存，用于本地联调和测试
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// Set 设置键值对并指定过期时间
func (m *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := memoryItem{value: value}
	if ttl > 0 {
		item.expireAt = m.now().Add(ttl)
	}
	m.items[key] = item
	return nil
}

// Get 获取键对应的值，过期键惰性删除
func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, _ := m.lookup(key)
	return value, nil
}

// SetNX 键不存在（或已过期）时写入
func (m *MemoryCache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	item := memoryItem{value: value}
	if ttl > 0 {
		item.expireAt = m.now().Add(ttl)
	}
	m.items[key] = item
	return true, nil
}

// CompareAndDelete 值匹配时删除键
func (m *MemoryCache) CompareAndDelete(ctx context.Context, key string, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.lookup(key)
	if !ok || current != value {
		return false, nil
	}
	delete(m.items, key)
	return true, nil
}

// lookup 调用方需持有锁
func (m *MemoryCache) lookup(key string) (string, bool) {
	item, ok := m.items[key]
	if !ok {
		return "", false
	}
	if !item.expireAt.IsZero() && !m.now().Before(item.expireAt) {
		delete(m.items, key)
		return "", false
	}
	return item.value, true
}

// Delete 删除键
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

var _ CacheService = (*MemoryCache)(nil)
