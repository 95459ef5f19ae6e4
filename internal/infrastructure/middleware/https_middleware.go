package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// TlsHandler 将 HTTP 请求重定向到 HTTPS
func TlsHandler(host string, port int) gin.HandlerFunc {
	// 只创建一次
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	})

	return func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			// 已重定向到 HTTPS（或请求被拒绝），终止当前请求
			zap.L().Warn("TLS redirection", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Abort()
			return
		}

		c.Next()
	}
}
