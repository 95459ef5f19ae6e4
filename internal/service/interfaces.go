// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层和中间件调用
package service

import (
	"context"

	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/dto/respond"
)

// UserService 账号业务接口
// 处理验证码、注册、登录、会话和资料查询
type UserService interface {
	// Login 密码或验证码登录
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
	// Register 注册并直接登录
	Register(ctx context.Context, req request.RegisterRequest) (*respond.LoginRespond, error)
	// SendCode 按用途下发验证码
	SendCode(ctx context.Context, req request.SendCodeRequest) error
	// ResetPassword 通过验证码重置密码
	ResetPassword(ctx context.Context, req request.ResetPasswordRequest) error
	// WechatLogin 微信授权码登录，首次登录自动建号
	WechatLogin(ctx context.Context, req request.WechatLoginRequest) (*respond.LoginRespond, error)
	// Logout 注销当前会话
	Logout(ctx context.Context, userID string) error
	// RefreshToken 签发新 Token，旧 Token 随即失效
	RefreshToken(ctx context.Context, userID string) (*respond.RefreshTokenRespond, error)
	// GetUserInfo 获取用户信息
	GetUserInfo(ctx context.Context, userID string) (*respond.UserInfo, error)
}

// AuthService 认证业务接口
type AuthService interface {
	// ValidateTokenID 验证 Token ID 是否为当前有效会话
	ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error)
}
