package respond

// LoginRespond 登录/注册/微信登录成功后的会话响应
// 使用位置:
//   - internal/client/account: Login, Register, WechatLogin
//   - internal/service/user: issueSession
type LoginRespond struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// RefreshTokenRespond 刷新 Token 响应
type RefreshTokenRespond struct {
	Token string `json:"token"`
}
