package respond

// UserInfo 用户身份信息
// 使用位置:
//   - internal/client/account: GetUserInfo
//   - internal/service/user: GetUserInfo
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
