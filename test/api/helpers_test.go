package api_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"kama_account_client/internal/client/account"
	"kama_account_client/internal/config"
	"kama_account_client/internal/dao/mysql/repository"
	myredis "kama_account_client/internal/dao/redis"
	"kama_account_client/internal/handler"
	"kama_account_client/internal/https_server"
	"kama_account_client/internal/infrastructure/mq"
	"kama_account_client/internal/infrastructure/sms"
	"kama_account_client/internal/service"
	"kama_account_client/internal/service/user"
	"kama_account_client/internal/transport"
	"kama_account_client/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// session 模拟调用方保存的登录态；客户端本身不保存 Token
type session struct {
	token string
}

func (s *session) Token() string { return s.token }

// stack 一套完整的桩服务 + 客户端
type stack struct {
	server  *httptest.Server
	client  *account.Client
	session *session
	cache   myredis.CacheService
}

// newStack 启动桩服务并创建客户端
// repos/cache 为 nil 时使用进程内实现
func newStack(t *testing.T, conf *config.Config, repos *repository.Repositories, cache myredis.CacheService) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)

	if repos == nil {
		repos = repository.NewMemoryRepositories()
	}
	if cache == nil {
		cache = myredis.NewMemoryCache()
	}
	smsService, err := sms.Init(conf.AuthCodeConfig)
	require.NoError(t, err)

	services := service.NewServices(service.Deps{
		Repos:  repos,
		Cache:  cache,
		Sms:    smsService,
		Events: mq.NewNoopPublisher(),
	}, user.OptionsFromConfig(conf))

	server := httptest.NewServer(https_server.Init(handler.NewHandlers(services), conf))
	t.Cleanup(server.Close)

	sess := &session{}
	clientConf := conf.ClientConfig
	clientConf.BaseURL = server.URL + conf.MainConfig.ApiPrefix
	tr := transport.NewHTTPTransport(clientConf, transport.WithTokenSource(sess.Token))
	return &stack{
		server:  server,
		client:  account.New(tr),
		session: sess,
		cache:   cache,
	}
}

func testConfig() *config.Config {
	conf := config.Default()
	conf.MainConfig.ApiPrefix = "/api"
	conf.AuthCodeConfig.FixedCode = "246810"
	conf.JWTConfig.Secret = "api-test-secret"
	return conf
}

var bg = context.Background()
