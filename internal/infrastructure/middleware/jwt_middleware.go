package middleware

import (
	"context"
	"net/http"
	"strings"

	"kama_account_client/pkg/errorx"
	"kama_account_client/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 上下文键
const (
	ContextUserID  = "user_id"
	ContextTokenID = "token_id"
)

// TokenValidator 校验 Token ID 是否为用户当前有效会话
type TokenValidator interface {
	ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    errorx.CodeUnauthorized,
		"msg":     msg,
	})
}

// JWTAuth JWT 认证中间件
// 验证 Token 并将用户信息存入上下文；validator 为 nil 时只校验签名和有效期
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Header 获取 Token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		// 2. 解析 Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Token 格式错误，请使用 Bearer Token")
			return
		}

		// 3. 验证 Token
		claims, err := jwt.ParseToken(parts[1])
		if err != nil || claims.Subject != "access_token" {
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}

		// 4. 单点互踢：只有最近一次签发的 Token 有效
		if validator != nil {
			ok, err := validator.ValidateTokenID(c.Request.Context(), claims.UserID, claims.TokenID)
			if err != nil {
				zap.L().Error("校验会话失败", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusOK, gin.H{
					"success": false,
					"code":    errorx.ErrServerBusy.Code,
					"msg":     errorx.ErrServerBusy.Msg,
				})
				return
			}
			if !ok {
				abortUnauthorized(c, errorx.ErrUnauthorized.Msg)
				return
			}
		}

		// 5. 将用户信息存入上下文，供后续 Handler 使用
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextTokenID, claims.TokenID)
		c.Next()
	}
}
