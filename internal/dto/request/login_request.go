package request

// LoginType 登录方式
type LoginType string

const (
	LoginTypeCode     LoginType = "code" // 手机号 + 验证码
	LoginTypePassword LoginType = "pwd"  // 账号 + 密码
)

// LoginRequest 用户登录请求
// Type=pwd 时使用 Account/Password，Type=code 时使用 Phone/Code
// 使用位置:
//   - internal/client/account: Client.Login
//   - internal/handler/user_handler.go: Login
type LoginRequest struct {
	Account  string    `json:"account,omitempty" binding:"required_if=Type pwd"`
	Password string    `json:"password,omitempty" binding:"required_if=Type pwd"`
	Phone    string    `json:"phone,omitempty" binding:"required_if=Type code"`
	Code     string    `json:"code,omitempty" binding:"required_if=Type code"`
	Type     LoginType `json:"type" binding:"required,oneof=code pwd"`
}
