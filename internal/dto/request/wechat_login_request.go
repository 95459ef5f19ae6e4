package request

// WechatLoginRequest 微信登录请求
// Code 为微信授权回调带回的 code，State 为防 CSRF 的 state
type WechatLoginRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state,omitempty"`
}
