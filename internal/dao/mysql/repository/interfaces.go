// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
package repository

import (
	"context"
	"time"

	"kama_account_client/internal/model"

	"gorm.io/gorm"
)

// UserRepository 账号数据访问接口
// 查不到记录时返回 errorx.CodeNotFound
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error)
	// FindByPhone 根据手机号查找用户
	FindByPhone(ctx context.Context, phone string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*model.UserInfo, error)
	// FindByWechatOpenID 根据微信 openid 查找用户
	FindByWechatOpenID(ctx context.Context, openID string) (*model.UserInfo, error)
	// Create 创建新用户
	Create(ctx context.Context, user *model.UserInfo) error
	// UpdatePassword 更新密码哈希
	UpdatePassword(ctx context.Context, uuid string, passwordHash string) error
	// UpdateLastLogin 记录最近登录时间
	UpdateLastLogin(ctx context.Context, uuid string, at time.Time) error
}

// Repositories 聚合所有 Repository
type Repositories struct {
	User UserRepository
}

// NewRepositories 基于 GORM 创建 Repository 集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}

// NewMemoryRepositories 创建进程内 Repository 集合，用于本地联调和测试
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		User: NewMemoryUserRepository(),
	}
}
