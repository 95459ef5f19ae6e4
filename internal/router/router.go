// Package router 提供 HTTP 路由注册
package router

import (
	"strings"

	"kama_account_client/internal/handler"
	"kama_account_client/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// prefix 为空时挂在根路径，如 "/api" 则所有接口位于 /api/user/...
func (r *Router) RegisterRoutes(engine *gin.Engine, prefix string) {
	prefix = "/" + strings.Trim(prefix, "/")
	r.registerUserRoutes(engine.Group(prefix))
}

// registerUserRoutes 注册账号相关路由
func (r *Router) registerUserRoutes(rg *gin.RouterGroup) {
	h := r.handlers.User

	// 公开接口 (无需认证)
	public := rg.Group("/user")
	{
		public.POST("/login", h.Login)
		public.POST("/register", h.Register)
		public.POST("/sendCode", h.SendCode)
		public.POST("/resetPassword", h.ResetPassword)
		public.POST("/wechatLogin", h.WechatLogin)
	}

	// 需要认证的接口
	private := rg.Group("/user")
	private.Use(middleware.JWTAuth(r.handlers.Auth))
	{
		private.POST("/logout", h.Logout)
		private.POST("/refreshToken", h.RefreshToken)
		private.GET("/userInfo", h.GetUserInfo)
	}
}
