package request

// ResetPasswordRequest 重置密码请求
// 使用位置:
//   - internal/client/account: Client.ResetPassword
//   - internal/handler/user_handler.go: ResetPassword
type ResetPasswordRequest struct {
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"required,mobile"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
