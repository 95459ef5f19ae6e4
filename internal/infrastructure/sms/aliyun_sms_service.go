package sms

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"kama_account_client/internal/config"
	"kama_account_client/pkg/errorx"
)

// 发送方式
const (
	SenderLog    = "log"
	SenderAliyun = "aliyun"
)

// 未配置签名和模板时使用阿里云提供的测试模板
const (
	defaultSignName     = "阿里云短信测试"
	defaultTemplateCode = "SMS_154950909"
)

// smsClient 阿里云短信客户端中本服务用到的部分
type smsClient interface {
	SendSmsWithOptions(request *dysmsapi20170525.SendSmsRequest, runtime *util.RuntimeOptions) (*dysmsapi20170525.SendSmsResponse, error)
}

// aliyunSmsService 阿里云短信服务实现
type aliyunSmsService struct {
	client       smsClient
	signName     string
	templateCode string
}

// NewAliyunSmsService 创建阿里云短信服务实例（用于依赖注入）
func NewAliyunSmsService(client *dysmsapi20170525.Client, auth config.AuthCodeConfig) SmsService {
	return newAliyunSmsService(client, auth)
}

func newAliyunSmsService(client smsClient, auth config.AuthCodeConfig) *aliyunSmsService {
	signName := auth.SignName
	if signName == "" {
		signName = defaultSignName
	}
	templateCode := auth.TemplateCode
	if templateCode == "" {
		templateCode = defaultTemplateCode
	}
	return &aliyunSmsService{
		client:       client,
		signName:     signName,
		templateCode: templateCode,
	}
}

// SendVerificationCode 调用阿里云接口下发验证码
// 接口返回的业务码不是 "OK" 时同样视为失败
func (s *aliyunSmsService) SendVerificationCode(ctx context.Context, phone string, code string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	// 对应模板中的变量 ${code}
	param, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "编码短信模板参数失败")
	}

	req := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(s.signName),
		TemplateCode:  tea.String(s.templateCode),
		PhoneNumbers:  tea.String(phone),
		TemplateParam: tea.String(string(param)),
	}

	rsp, err := s.client.SendSmsWithOptions(req, &util.RuntimeOptions{})
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err), zap.String("phone", phone))
		return errorx.Wrap(err, errorx.CodeServerBusy, "短信发送失败")
	}

	if rsp != nil && rsp.Body != nil {
		zap.L().Info("短信发送接口响应",
			zap.String("phone", phone),
			zap.String("code", tea.StringValue(rsp.Body.Code)),
			zap.String("requestId", tea.StringValue(rsp.Body.RequestId)),
		)
		if c := tea.StringValue(rsp.Body.Code); c != "OK" {
			return errorx.Newf(errorx.CodeServerBusy, "短信发送失败: %s %s", c, tea.StringValue(rsp.Body.Message))
		}
	}
	return nil
}

// shouldUseMock 没配真实 AK 时降级为日志发送，便于本机跑通验证码链路
func shouldUseMock(auth config.AuthCodeConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("KAMA_ACCOUNT_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	ak := strings.ToLower(strings.TrimSpace(auth.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(auth.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	return strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey")
}

// Init 按 authCodeConfig.sender 创建短信服务
func Init(auth config.AuthCodeConfig) (SmsService, error) {
	switch auth.Sender {
	case "", SenderLog:
		return NewLogSmsService(nil), nil
	case SenderAliyun:
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown sms sender %q", auth.Sender)
	}

	if shouldUseMock(auth) {
		zap.L().Warn("SMS Service 使用本地 Mock 模式（未配置阿里云 AccessKey）")
		return NewLogSmsService(nil), nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(auth.AccessKeyID),
		AccessKeySecret: tea.String(auth.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "初始化阿里云短信客户端失败")
	}
	return NewAliyunSmsService(client, auth), nil
}
