// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
)

// Duration 支持 "5s"、"1m30s" 形式的 TOML 时长
type Duration struct {
	time.Duration
}

// UnmarshalText 实现 encoding.TextUnmarshaler，供 toml 解码调用
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ClientConfig 账号 API 客户端配置
type ClientConfig struct {
	BaseURL string   `toml:"baseURL"` // 服务端地址，如 "http://127.0.0.1:8000/api"
	Timeout Duration `toml:"timeout"` // 单次请求超时时间，如 "10s"
	Token   string   `toml:"token"`   // 固定 Bearer Token，可留空
}

// MainConfig 主配置，包含账号服务端（联调桩服务）基本信息
type MainConfig struct {
	AppName   string `toml:"appName"`   // 应用名称，用于日志标识等
	Host      string `toml:"host"`      // 服务器监听地址，如 "0.0.0.0"
	Port      int    `toml:"port"`      // 服务器监听端口，如 8000
	ApiPrefix string `toml:"apiPrefix"` // 路由前缀，如 "/api"，留空表示挂在根路径
	ForceTLS  bool   `toml:"forceTLS"`  // 是否将 HTTP 请求重定向到 HTTPS
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// StoreConfig 存储后端选择
type StoreConfig struct {
	CacheMode string `toml:"cacheMode"` // 缓存模式："memory" 或 "redis"
	UserStore string `toml:"userStore"` // 用户存储："memory" 或 "mysql"
}

// AuthCodeConfig 验证码配置
type AuthCodeConfig struct {
	Sender          string `toml:"sender"`          // 发送方式："log"（仅打印日志）或 "aliyun"
	Length          int    `toml:"length"`          // 验证码位数，默认 6
	TTLSeconds      int    `toml:"ttlSeconds"`      // 验证码有效期（秒），默认 60
	FixedCode       string `toml:"fixedCode"`       // 固定验证码，仅用于本地联调
	Locale          string `toml:"locale"`          // 参数校验提示语言："zh" 或 "en"
	AccessKeyID     string `toml:"accessKeyID"`     // 阿里云 AccessKey ID
	AccessKeySecret string `toml:"accessKeySecret"` // 阿里云 AccessKey Secret
	SignName        string `toml:"signName"`        // 短信签名名称
	TemplateCode    string `toml:"templateCode"`    // 短信模板 Code
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录，留空只输出到控制台
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig Kafka 账号事件配置
type KafkaConfig struct {
	MessageMode string   `toml:"messageMode"` // 事件模式："off" 或 "kafka"
	HostPort    string   `toml:"hostPort"`    // Kafka 服务器地址，如 "localhost:9092"
	LoginTopic  string   `toml:"loginTopic"`  // 登录事件主题
	LogoutTopic string   `toml:"logoutTopic"` // 登出事件主题
	Timeout     Duration `toml:"timeout"`     // 写超时，如 "1s"
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret            string `toml:"secret"`            // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // Token 有效期（分钟）
}

// WechatConfig 微信登录配置
type WechatConfig struct {
	DefaultNickname string `toml:"defaultNickname"` // 首次微信登录自动创建用户时的昵称
	DefaultAvatar   string `toml:"defaultAvatar"`   // 默认头像
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	ClientConfig   `toml:"clientConfig"`   // 客户端配置
	MainConfig     `toml:"mainConfig"`     // 主配置
	MysqlConfig    `toml:"mysqlConfig"`    // MySQL 配置
	RedisConfig    `toml:"redisConfig"`    // Redis 配置
	StoreConfig    `toml:"storeConfig"`    // 存储选择
	AuthCodeConfig `toml:"authCodeConfig"` // 验证码配置
	LogConfig      `toml:"logConfig"`      // 日志配置
	KafkaConfig    `toml:"kafkaConfig"`    // Kafka 配置
	JWTConfig      `toml:"jwtConfig"`      // JWT 配置
	WechatConfig   `toml:"wechatConfig"`   // 微信登录配置
}

// Default 返回带默认值的配置
// 配置文件中出现的字段会覆盖这里的默认值
func Default() *Config {
	return &Config{
		ClientConfig: ClientConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: Duration{10 * time.Second},
		},
		MainConfig: MainConfig{
			AppName: "kama_account",
			Host:    "0.0.0.0",
			Port:    8000,
		},
		RedisConfig: RedisConfig{Host: "127.0.0.1", Port: 6379},
		StoreConfig: StoreConfig{CacheMode: "memory", UserStore: "memory"},
		AuthCodeConfig: AuthCodeConfig{
			Sender:     "log",
			Length:     6,
			TTLSeconds: 60,
			Locale:     "zh",
		},
		LogConfig:   LogConfig{Level: "info"},
		KafkaConfig: KafkaConfig{MessageMode: "off", Timeout: Duration{time.Second}},
		JWTConfig: JWTConfig{
			Secret:            "kama-account-dev-secret",
			AccessTokenExpiry: 120,
		},
		WechatConfig: WechatConfig{
			DefaultNickname: "微信用户",
			DefaultAvatar:   "https://cube.elemecdn.com/0/88/03b0d39583f48206768a7534e55bcpng.png",
		},
	}
}

// config 全局配置单例，延迟加载
var config *Config

// searchPaths 候选配置文件路径（优先加载本地配置）
var searchPaths = []string{
	"configs/config_local.toml",       // 本地开发配置（优先）
	"configs/config.toml",             // 默认配置
	"../../configs/config_local.toml", // 从子目录运行时的路径
	"../../configs/config.toml",       // 从子目录运行时的路径
}

// Load 从指定路径加载配置文件，未出现的字段保留默认值
func Load(path string) (*Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return conf, nil
}

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() (*Config, error) {
	for _, path := range searchPaths {
		if conf, err := Load(path); err == nil {
			return conf, nil
		}
	}
	return nil, fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件，找不到配置文件时使用默认值
func GetConfig() *Config {
	if config == nil {
		conf, err := LoadConfig()
		if err != nil {
			conf = Default()
		}
		config = conf
	}
	return config
}

// SetConfig 替换全局配置实例，用于命令行指定配置文件
func SetConfig(conf *Config) {
	config = conf
}
