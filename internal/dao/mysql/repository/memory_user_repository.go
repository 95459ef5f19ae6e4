package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"kama_account_client/internal/model"
	"kama_account_client/pkg/errorx"
)

// memoryUserRepository 进程内用户存储
// 返回的都是副本，调用方修改不会影响存储内容
type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[string]*model.UserInfo // uuid -> user
}

// NewMemoryUserRepository 创建进程内用户 Repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*model.UserInfo)}
}

func (r *memoryUserRepository) FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[uuid]; ok {
		return cloneUser(u), nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 uuid=%s: record not found", uuid)
}

func (r *memoryUserRepository) FindByPhone(ctx context.Context, phone string) (*model.UserInfo, error) {
	return r.findOne(phone != "", func(u *model.UserInfo) bool { return model.StringValue(u.Phone) == phone }, "phone="+phone)
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.UserInfo, error) {
	return r.findOne(email != "", func(u *model.UserInfo) bool { return model.StringValue(u.Email) == email }, "email="+email)
}

func (r *memoryUserRepository) FindByWechatOpenID(ctx context.Context, openID string) (*model.UserInfo, error) {
	return r.findOne(openID != "", func(u *model.UserInfo) bool { return model.StringValue(u.WechatOpenID) == openID }, "openid="+openID)
}

func (r *memoryUserRepository) findOne(valid bool, match func(*model.UserInfo) bool, desc string) (*model.UserInfo, error) {
	if valid {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, u := range r.users {
			if match(u) {
				return cloneUser(u), nil
			}
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 %s: record not found", desc)
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Uuid]; ok {
		return errorx.Newf(errorx.CodeDBError, "创建用户: duplicate uuid %s", user.Uuid)
	}
	// 与 user_info 表上的唯一索引一致，NULL 不参与比较
	for _, u := range r.users {
		switch {
		case sameValue(u.Phone, user.Phone):
			return errorx.Newf(errorx.CodeUserExist, "创建用户: duplicate phone %s", *user.Phone)
		case sameValue(u.Email, user.Email):
			return errorx.Newf(errorx.CodeUserExist, "创建用户: duplicate email %s", *user.Email)
		case sameValue(u.WechatOpenID, user.WechatOpenID):
			return errorx.Newf(errorx.CodeUserExist, "创建用户: duplicate openid %s", *user.WechatOpenID)
		}
	}
	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Uuid] = cloneUser(user)
	return nil
}

func sameValue(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// cloneUser 连同指针字段一起复制
func cloneUser(u *model.UserInfo) *model.UserInfo {
	cp := *u
	cp.Phone = model.NullableString(model.StringValue(u.Phone))
	cp.Email = model.NullableString(model.StringValue(u.Email))
	cp.WechatOpenID = model.NullableString(model.StringValue(u.WechatOpenID))
	return &cp
}

func (r *memoryUserRepository) UpdatePassword(ctx context.Context, uuid string, passwordHash string) error {
	return r.update(uuid, func(u *model.UserInfo) { u.Password = passwordHash })
}

func (r *memoryUserRepository) UpdateLastLogin(ctx context.Context, uuid string, at time.Time) error {
	return r.update(uuid, func(u *model.UserInfo) { u.LastLoginAt = sql.NullTime{Time: at, Valid: true} })
}

func (r *memoryUserRepository) update(uuid string, fn func(*model.UserInfo)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uuid]
	if !ok {
		return errorx.Newf(errorx.CodeNotFound, "更新用户 uuid=%s: record not found", uuid)
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}
