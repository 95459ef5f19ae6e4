// Package sms 提供验证码下发服务
// 验证码的生成、存储和频率限制由 Service 层负责，这里只负责把验证码送达
package sms

import "context"

// SmsService 验证码下发接口
// 支持多种实现（阿里云短信、本地日志等），Service 层应依赖此接口而非具体实现
type SmsService interface {
	// SendVerificationCode 向手机号下发验证码
	SendVerificationCode(ctx context.Context, phone string, code string) error
}

// 确保实现了 SmsService 接口
var (
	_ SmsService = (*logSmsService)(nil)
	_ SmsService = (*aliyunSmsService)(nil)
)
