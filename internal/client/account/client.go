// Package account 提供账号相关接口的类型化客户端
// 每个方法只描述一次出站请求（路径、请求体、方法），实际发送交给注入的 Transport
// 本包不校验参数、不重试、不解释信封中的 success/code，也不保存 Token
package account

import (
	"context"

	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/dto/respond"
	"kama_account_client/internal/transport"
)

// 接口路径
const (
	EndpointLogin         = "user/login"
	EndpointRegister      = "user/register"
	EndpointSendCode      = "user/sendCode"
	EndpointResetPassword = "user/resetPassword"
	EndpointWechatLogin   = "user/wechatLogin"
	EndpointLogout        = "user/logout"
	EndpointRefreshToken  = "user/refreshToken"
	EndpointUserInfo      = "user/userInfo"
)

// Client 账号 API 客户端
// 无内部状态，可被多个 goroutine 并发使用
type Client struct {
	tr transport.Transport
}

// New 创建客户端，tr 由组合根（main 或测试）提供
func New(tr transport.Transport) *Client {
	return &Client{tr: tr}
}

// Login 账号密码或手机验证码登录
// POST user/login
func (c *Client) Login(ctx context.Context, req request.LoginRequest) (*transport.Envelope[respond.LoginRespond], error) {
	return transport.Send[respond.LoginRespond](ctx, c.tr, post(EndpointLogin, req))
}

// Register 注册账号
// POST user/register
func (c *Client) Register(ctx context.Context, req request.RegisterRequest) (*transport.Envelope[respond.LoginRespond], error) {
	return transport.Send[respond.LoginRespond](ctx, c.tr, post(EndpointRegister, req))
}

// SendCode 发送验证码
// POST user/sendCode
func (c *Client) SendCode(ctx context.Context, req request.SendCodeRequest) (*transport.Envelope[bool], error) {
	return transport.Send[bool](ctx, c.tr, post(EndpointSendCode, req))
}

// ResetPassword 通过验证码重置密码
// POST user/resetPassword
func (c *Client) ResetPassword(ctx context.Context, req request.ResetPasswordRequest) (*transport.Envelope[bool], error) {
	return transport.Send[bool](ctx, c.tr, post(EndpointResetPassword, req))
}

// WechatLogin 微信授权码登录
// POST user/wechatLogin
func (c *Client) WechatLogin(ctx context.Context, req request.WechatLoginRequest) (*transport.Envelope[respond.LoginRespond], error) {
	return transport.Send[respond.LoginRespond](ctx, c.tr, post(EndpointWechatLogin, req))
}

// Logout 退出登录
// POST user/logout
func (c *Client) Logout(ctx context.Context) (*transport.Envelope[bool], error) {
	return transport.Send[bool](ctx, c.tr, post(EndpointLogout, nil))
}

// RefreshToken 刷新当前会话 Token
// POST user/refreshToken
func (c *Client) RefreshToken(ctx context.Context) (*transport.Envelope[respond.RefreshTokenRespond], error) {
	return transport.Send[respond.RefreshTokenRespond](ctx, c.tr, post(EndpointRefreshToken, nil))
}

// GetUserInfo 获取当前登录用户信息
// GET user/userInfo
func (c *Client) GetUserInfo(ctx context.Context) (*transport.Envelope[respond.UserInfo], error) {
	return transport.Send[respond.UserInfo](ctx, c.tr, transport.Call{
		Endpoint: EndpointUserInfo,
		Method:   transport.MethodGet,
	})
}

func post(endpoint string, body any) transport.Call {
	return transport.Call{
		Endpoint: endpoint,
		Body:     body,
		Method:   transport.MethodPost,
	}
}
