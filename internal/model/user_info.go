// Package model 定义数据库实体模型
// 本文件定义账号模型，包含用户基本资料和认证信息
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// UserInfo 账号模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 对外暴露的用户唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);comment:用户唯一id"`

	// Nickname 用户昵称
	Nickname string `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`

	// Phone 手机号码，唯一
	// 未绑定时存 NULL，多个微信用户不会在空串上冲突
	Phone *string `gorm:"column:phone;uniqueIndex;type:varchar(20);comment:电话"`

	// Email 邮箱地址（可选），唯一
	Email *string `gorm:"column:email;uniqueIndex;type:varchar(64);comment:邮箱"`

	// Avatar 用户头像 URL
	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文；微信用户为空
	Password string `gorm:"column:password;type:varchar(100);comment:密码"`

	// WechatOpenID 微信 openid
	WechatOpenID *string `gorm:"column:wechat_open_id;uniqueIndex;type:varchar(64);comment:微信openid"`

	// LastLoginAt 上次登录时间
	LastLoginAt sql.NullTime `gorm:"column:last_login_at;type:datetime;comment:上次登录时间"`

	// Status 账号状态
	// 0=正常, 1=禁用
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.正常，1.禁用"`
}

// 账号状态
const (
	UserStatusNormal   int8 = 0
	UserStatusDisabled int8 = 1
)

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// NullableString 空串转为 nil，对应数据库 NULL
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue nil 视为空串
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// SetPassword 使用 bcrypt 加密明文密码后写入 Password 字段
func (u *UserInfo) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword 校验密码是否正确
// 未设置密码的账号（如微信用户）始终返回 false
func (u *UserInfo) CheckPassword(plaintext string) bool {
	if u.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
