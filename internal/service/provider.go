// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"kama_account_client/internal/dao/mysql/repository"
	myredis "kama_account_client/internal/dao/redis"
	"kama_account_client/internal/infrastructure/mq"
	"kama_account_client/internal/infrastructure/sms"
	"kama_account_client/internal/service/auth"
	"kama_account_client/internal/service/user"
)

// Services 聚合所有 Service 实例
type Services struct {
	User UserService // 账号 Service
	Auth AuthService // 认证 Service
}

// Deps Service 层依赖
type Deps struct {
	Repos  *repository.Repositories
	Cache  myredis.CacheService
	Sms    sms.SmsService
	Events mq.EventPublisher
}

// NewServices 创建并注入所有 Service 实例
func NewServices(deps Deps, opts user.Options) *Services {
	events := deps.Events
	if events == nil {
		events = mq.NewNoopPublisher()
	}
	return &Services{
		User: user.NewUserService(deps.Repos, deps.Cache, deps.Sms, events, opts),
		Auth: auth.NewAuthService(deps.Cache),
	}
}
