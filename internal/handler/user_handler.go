// Package handler 提供 HTTP 请求处理器
// 本文件处理账号相关的 API 请求
package handler

import (
	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/infrastructure/middleware"
	"kama_account_client/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 账号请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建账号处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Login 用户登录（密码或验证码）
// POST /user/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Register 用户注册
// POST /user/register
// 请求体: request.RegisterRequest
// 响应: respond.LoginRespond（注册即登录）
func (h *UserHandler) Register(c *gin.Context) {
	// 1. 绑定并验证请求参数
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	// 2. 调用 Service 层处理业务逻辑
	data, err := h.userSvc.Register(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	// 3. 返回成功响应
	HandleSuccess(c, data)
}

// SendCode 发送验证码
// POST /user/sendCode
func (h *UserHandler) SendCode(c *gin.Context) {
	var req request.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.SendCode(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, true)
}

// ResetPassword 重置密码
// POST /user/resetPassword
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.ResetPassword(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, true)
}

// WechatLogin 微信登录
// POST /user/wechatLogin
func (h *UserHandler) WechatLogin(c *gin.Context) {
	var req request.WechatLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.WechatLogin(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Logout 退出登录
// POST /user/logout（需要认证）
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userSvc.Logout(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, true)
}

// RefreshToken 刷新 Token
// POST /user/refreshToken（需要认证）
func (h *UserHandler) RefreshToken(c *gin.Context) {
	data, err := h.userSvc.RefreshToken(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserInfo 获取当前用户信息
// GET /user/userInfo（需要认证）
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
