package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig JWT 配置
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration // Token 有效期
}

// 全局配置，由 Init 函数初始化
var jwtConfig *JWTConfig

// ErrNotInitialized 未调用 Init 就签发或解析 Token
var ErrNotInitialized = errors.New("jwt: not initialized")

// Init 初始化 JWT 配置
func Init(secret string, expiryMinutes int) {
	jwtConfig = &JWTConfig{
		Secret:      secret,
		TokenExpiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

// TokenExpiry 返回当前配置的 Token 有效期
func TokenExpiry() time.Duration {
	if jwtConfig == nil {
		return 0
	}
	return jwtConfig.TokenExpiry
}

// Claims 自定义 JWT 声明
// TokenID 用于单点登录：服务端只认最近一次签发的 TokenID
type Claims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// GenerateToken 生成会话 Token
// 返回 token 字符串和 tokenID（存入缓存实现单点互踢）
func GenerateToken(userID string) (tokenString string, tokenID string, err error) {
	if jwtConfig == nil {
		return "", "", ErrNotInitialized
	}
	tokenID = uuid.NewString()
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "kama_account",
			Subject:   "access_token",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(jwtConfig.Secret))
	return
}

// ParseToken 解析并验证 Token
func ParseToken(tokenString string) (*Claims, error) {
	if jwtConfig == nil {
		return nil, ErrNotInitialized
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtConfig.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
