package repository

import (
	"context"
	"database/sql"
	"time"

	"kama_account_client/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 按 UUID 查找用户
func (r *userRepository) FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.WithContext(ctx).First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByPhone 按手机号查找用户
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.UserInfo, error) {
	if phone == "" {
		return nil, wrapDBError(gorm.ErrRecordNotFound, "查询用户 phone 为空")
	}
	var user model.UserInfo
	if err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 phone=%s", phone)
	}
	return &user, nil
}

// FindByEmail 按邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.UserInfo, error) {
	if email == "" {
		return nil, wrapDBError(gorm.ErrRecordNotFound, "查询用户 email 为空")
	}
	var user model.UserInfo
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByWechatOpenID 按微信 openid 查找用户
func (r *userRepository) FindByWechatOpenID(ctx context.Context, openID string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.WithContext(ctx).First(&user, "wechat_open_id = ?", openID).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 openid=%s", openID)
	}
	return &user, nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.UserInfo) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdatePassword 更新密码
func (r *userRepository) UpdatePassword(ctx context.Context, uuid string, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.UserInfo{}).Where("uuid = ?", uuid).Update("password", passwordHash)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "更新密码 uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "更新密码 uuid=%s", uuid)
	}
	return nil
}

// UpdateLastLogin 更新最近登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, uuid string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("last_login_at", sql.NullTime{Time: at, Valid: true}).Error
	return wrapDBErrorf(err, "更新登录时间 uuid=%s", uuid)
}
