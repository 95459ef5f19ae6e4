// Package auth 提供认证相关的业务逻辑
// 维护每个用户当前有效的 Token ID，实现单点互踢
package auth

import (
	"context"

	myredis "kama_account_client/internal/dao/redis"
	"kama_account_client/pkg/constants"
)

// SessionKey 用户当前有效 Token ID 的缓存键
func SessionKey(userID string) string {
	return constants.USER_TOKEN_PREFIX + userID
}

// Service 认证服务实现
type Service struct {
	cache myredis.CacheService // 缓存服务（依赖倒置）
}

// NewAuthService 创建认证服务实例
func NewAuthService(cache myredis.CacheService) *Service {
	return &Service{
		cache: cache,
	}
}

// ValidateTokenID 验证用户的 Token ID 是否仍是最近一次签发的
// 用户在别处登录、刷新或登出后，旧 Token ID 即失效
func (s *Service) ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(ctx, SessionKey(userID))
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}
