// Package redis 定义缓存服务接口
// Service 层依赖此接口而非具体 Redis 实现
package redis

import (
	"context"
	"time"
)

// CacheService 缓存服务接口
// 抽象验证码与会话标识的存取，支持 Redis 和进程内存两种实现
type CacheService interface {
	// Set 设置键值对并指定过期时间，ttl<=0 表示不过期
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get 获取键对应的值（键不存在返回空字符串和 nil）
	Get(ctx context.Context, key string) (string, error)
	// Delete 删除键（如果存在）
	Delete(ctx context.Context, key string) error
	// SetNX 键不存在时才写入，返回是否写入成功
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// CompareAndDelete 当前值等于 value 时删除键并返回 true，否则不做任何修改
	CompareAndDelete(ctx context.Context, key string, value string) (bool, error)
}
