package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[clientConfig]
baseURL = "http://example.test/api"
timeout = "3s"

[mainConfig]
port = 9001
apiPrefix = "/api"

[authCodeConfig]
fixedCode = "000000"

[storeConfig]
cacheMode = "redis"

[kafkaConfig]
timeout = "5s"
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/api", conf.ClientConfig.BaseURL)
	assert.Equal(t, 3*time.Second, conf.ClientConfig.Timeout.Duration)
	assert.Equal(t, 9001, conf.MainConfig.Port)
	assert.Equal(t, "/api", conf.MainConfig.ApiPrefix)
	assert.Equal(t, "000000", conf.AuthCodeConfig.FixedCode)
	assert.Equal(t, "redis", conf.StoreConfig.CacheMode)
	assert.Equal(t, 5*time.Second, conf.KafkaConfig.Timeout.Duration)

	// 未出现的字段保留默认值
	assert.Equal(t, "0.0.0.0", conf.MainConfig.Host)
	assert.Equal(t, 6, conf.AuthCodeConfig.Length)
	assert.Equal(t, "memory", conf.StoreConfig.UserStore)
	assert.Equal(t, "微信用户", conf.WechatConfig.DefaultNickname)
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
[clientConfig]
timeout = "soon"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestGetConfig_FallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	SetConfig(nil)

	conf := GetConfig()
	require.NotNil(t, conf)
	assert.Same(t, conf, GetConfig())
}
