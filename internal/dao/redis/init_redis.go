// Package redis 提供缓存连接初始化逻辑
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"strconv"

	"kama_account_client/internal/config"
	"kama_account_client/pkg/errorx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 缓存模式
const (
	CacheModeMemory = "memory"
	CacheModeRedis  = "redis"
)

// NewRedisClient 按配置创建 Redis 客户端
func NewRedisClient(conf config.RedisConfig) *redis.Client {
	// 拼接地址：host:port
	addr := conf.Host + ":" + strconv.Itoa(conf.Port)

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Password,
		DB:       conf.Db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 15,
	})
}

// Init 按 storeConfig.cacheMode 创建缓存服务
// redis 模式下会先 PING 一次，连不上直接返回错误
func Init(ctx context.Context, conf *config.Config) (CacheService, error) {
	switch conf.StoreConfig.CacheMode {
	case "", CacheModeMemory:
		zap.L().Info("cache backend: memory")
		return NewMemoryCache(), nil
	case CacheModeRedis:
		client := NewRedisClient(conf.RedisConfig)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errorx.Wrap(err, errorx.CodeCacheError, "redis ping failed")
		}
		zap.L().Info("cache backend: redis", zap.String("addr", client.Options().Addr))
		return NewRedisCache(client), nil
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown cacheMode %q", conf.StoreConfig.CacheMode)
	}
}
