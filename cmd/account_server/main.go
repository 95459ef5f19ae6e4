package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kama_account_client/internal/config"
	dao "kama_account_client/internal/dao/mysql"
	myredis "kama_account_client/internal/dao/redis"
	"kama_account_client/internal/handler"
	"kama_account_client/internal/https_server"
	"kama_account_client/internal/infrastructure/logger"
	"kama_account_client/internal/infrastructure/mq"
	"kama_account_client/internal/infrastructure/sms"
	"kama_account_client/internal/service"
	"kama_account_client/internal/service/user"
	"kama_account_client/pkg/constants"
	"kama_account_client/pkg/util/jwt"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，留空时按默认路径查找")
	mode := flag.String("mode", "dev", "运行模式：dev 同时输出到控制台")
	flag.Parse()

	// 1. 加载配置
	conf := config.GetConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config failed: %v", err)
		}
		config.SetConfig(loaded)
		conf = loaded
	}

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, *mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()
	zap.L().Info("日志初始化成功")

	ctx := context.Background()

	// 3. 初始化用户存储
	repos, err := dao.Init(conf)
	if err != nil {
		zap.L().Fatal("用户存储初始化失败", zap.Error(err))
	}

	// 4. 初始化缓存
	cache, err := myredis.Init(ctx, conf)
	if err != nil {
		zap.L().Fatal("缓存初始化失败", zap.Error(err))
	}

	// 5. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)

	// 6. 初始化短信和账号事件
	smsService, err := sms.Init(conf.AuthCodeConfig)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	events, err := mq.Init(conf.KafkaConfig)
	if err != nil {
		zap.L().Fatal("账号事件初始化失败", zap.Error(err))
	}

	// 7. 初始化 Service 层 (依赖注入)
	services := service.NewServices(service.Deps{
		Repos:  repos,
		Cache:  cache,
		Sms:    smsService,
		Events: events,
	}, user.OptionsFromConfig(conf))

	// 8. 初始化 HTTP 服务器
	engine := https_server.Init(handler.NewHandlers(services), conf)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}

	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr), zap.String("apiPrefix", conf.MainConfig.ApiPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(ctx, constants.SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("服务器关闭异常", zap.Error(err))
	}
	if err := events.Close(); err != nil {
		zap.L().Error("关闭账号事件失败", zap.Error(err))
	}
	if closer, ok := cache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	zap.L().Info("服务器已关闭")
}
