package sms

import (
	"context"

	"go.uber.org/zap"
)

// logSmsService 本地联调实现：验证码只写日志，不调用第三方短信
type logSmsService struct {
	logger *zap.Logger
}

// NewLogSmsService 创建日志短信服务，logger 为 nil 时使用全局 logger
func NewLogSmsService(logger *zap.Logger) SmsService {
	return &logSmsService{logger: logger}
}

func (s *logSmsService) SendVerificationCode(ctx context.Context, phone string, code string) error {
	logger := s.logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Info("【MockSMS】验证码已生成", zap.String("phone", phone), zap.String("code", code))
	return nil
}
