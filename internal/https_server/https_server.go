// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"kama_account_client/internal/config"                    // 配置管理
	"kama_account_client/internal/handler"                   // Handler 聚合对象
	"kama_account_client/internal/infrastructure/logger"     // 自定义日志中间件
	"kama_account_client/internal/infrastructure/middleware" // TLS 重定向
	"kama_account_client/internal/router"                    // 路由注册

	"github.com/gin-contrib/cors" // CORS 跨域中间件
	"github.com/gin-gonic/gin"    // Gin Web 框架
	"go.uber.org/zap"
)

// Init 初始化 HTTP/HTTPS 服务器并返回 Gin 引擎实例
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 注册日志和恢复中间件
//  3. 配置 CORS 跨域规则
//  4. 按需开启 TLS 重定向
//  5. 初始化参数校验翻译器并注册业务路由
func Init(handlers *handler.Handlers, conf *config.Config) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	// 配置 CORS 跨域规则
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 允许所有来源（生产环境应指定具体域名）
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// 由 Nginx 处理 SSL 时保持关闭
	if conf.MainConfig.ForceTLS {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))
	}

	if err := handler.InitTrans(conf.AuthCodeConfig.Locale); err != nil {
		zap.L().Warn("init validator translator failed", zap.String("locale", conf.AuthCodeConfig.Locale), zap.Error(err))
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine, conf.MainConfig.ApiPrefix)

	return engine
}
