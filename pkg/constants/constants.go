package constants

const (
	AUTH_CODE_PREFIX         = "auth_code:"  // 验证码缓存键前缀，完整键为 auth_code:<purpose>:<phone>
	USER_TOKEN_PREFIX        = "user_token:" // 当前有效 Token ID 缓存键前缀
	DEFAULT_CODE_LENGTH      = 6             // 验证码默认位数
	DEFAULT_CODE_TTL_SECONDS = 60            // 验证码默认有效期（秒）
	SHUTDOWN_TIMEOUT_SECONDS = 5             // 服务优雅退出等待时间（秒）
)
