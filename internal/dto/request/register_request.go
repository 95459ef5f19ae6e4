package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/client/account: Client.Register
//   - internal/handler/user_handler.go: Register
type RegisterRequest struct {
	Email    string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,mobile"`
	Password string `json:"password" binding:"required,min=6"`
	Code     string `json:"code" binding:"required"`
	Nickname string `json:"nickname,omitempty" binding:"omitempty,max=20"`
}
