package request

// CodePurpose 验证码用途，服务端据此区分校验逻辑
type CodePurpose string

const (
	CodePurposeLogin         CodePurpose = "login"
	CodePurposeRegister      CodePurpose = "register"
	CodePurposeResetPassword CodePurpose = "reset_password"
)

// SendCodeRequest 发送验证码请求
// 用途字段在线上协议中名为 type
// 使用位置:
//   - internal/client/account: Client.SendCode
//   - internal/handler/user_handler.go: SendCode
type SendCodeRequest struct {
	Email   string      `json:"email,omitempty" binding:"omitempty,email"`
	Phone   string      `json:"phone" binding:"required,mobile"`
	Purpose CodePurpose `json:"type" binding:"required,oneof=login register reset_password"`
}
