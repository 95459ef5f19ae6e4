// Package user 实现账号业务逻辑
// 验证码、注册登录、单点会话和资料查询都在这里，Handler 只做参数绑定
package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kama_account_client/internal/config"
	"kama_account_client/internal/dao/mysql/repository"
	myredis "kama_account_client/internal/dao/redis"
	"kama_account_client/internal/dto/request"
	"kama_account_client/internal/dto/respond"
	"kama_account_client/internal/infrastructure/mq"
	"kama_account_client/internal/infrastructure/sms"
	"kama_account_client/internal/model"
	"kama_account_client/internal/service/auth"
	"kama_account_client/pkg/constants"
	"kama_account_client/pkg/errorx"
	"kama_account_client/pkg/util/jwt"
	"kama_account_client/pkg/util/random"
)

// Options 账号业务参数
type Options struct {
	CodeLength      int           // 验证码位数
	CodeTTL         time.Duration // 验证码有效期，有效期内不允许重发
	FixedCode       string        // 固定验证码，仅用于本地联调
	DefaultNickname string        // 微信首次登录的默认昵称
	DefaultAvatar   string        // 默认头像
}

// OptionsFromConfig 从配置构造 Options
func OptionsFromConfig(conf *config.Config) Options {
	return Options{
		CodeLength:      conf.AuthCodeConfig.Length,
		CodeTTL:         time.Duration(conf.AuthCodeConfig.TTLSeconds) * time.Second,
		FixedCode:       conf.AuthCodeConfig.FixedCode,
		DefaultNickname: conf.WechatConfig.DefaultNickname,
		DefaultAvatar:   conf.WechatConfig.DefaultAvatar,
	}
}

// userInfoService 账号业务逻辑实现
type userInfoService struct {
	repos  *repository.Repositories
	cache  myredis.CacheService
	sms    sms.SmsService
	events mq.EventPublisher
	opts   Options
	now    func() time.Time
}

// NewUserService 构造函数，注入 Repository、缓存、短信和事件依赖
func NewUserService(repos *repository.Repositories, cache myredis.CacheService, smsService sms.SmsService, events mq.EventPublisher, opts Options) *userInfoService {
	if opts.CodeLength <= 0 {
		opts.CodeLength = constants.DEFAULT_CODE_LENGTH
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = constants.DEFAULT_CODE_TTL_SECONDS * time.Second
	}
	return &userInfoService{
		repos:  repos,
		cache:  cache,
		sms:    smsService,
		events: events,
		opts:   opts,
		now:    time.Now,
	}
}

// codeKey 验证码缓存键，不同用途互不影响
func codeKey(purpose request.CodePurpose, phone string) string {
	return constants.AUTH_CODE_PREFIX + string(purpose) + ":" + phone
}


// SendCode 发送验证码
// 注册用途要求手机号未注册，登录和重置密码要求手机号已注册
func (u *userInfoService) SendCode(ctx context.Context, req request.SendCodeRequest) error {
	if !request.IsValidPhone(req.Phone) {
		return errorx.New(errorx.CodeInvalidParam, "手机号格式不正确")
	}

	_, err := u.repos.User.FindByPhone(ctx, req.Phone)
	switch {
	case err == nil && req.Purpose == request.CodePurposeRegister:
		return errorx.New(errorx.CodeUserExist, "该电话已经存在，注册失败")
	case err != nil && !errorx.IsNotFound(err):
		zap.L().Error("查询用户失败", zap.Error(err))
		return errorx.ErrServerBusy
	case err != nil && req.Purpose != request.CodePurposeRegister:
		return errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
	}

	code := u.opts.FixedCode
	if code == "" {
		code = random.GetRandomCode(u.opts.CodeLength)
	}

	// 占位即频率限制：有效期内的验证码未被使用前不允许重发
	key := codeKey(req.Purpose, req.Phone)
	reserved, err := u.cache.SetNX(ctx, key, code, u.opts.CodeTTL)
	if err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err), zap.String("phone", req.Phone))
		return errorx.ErrServerBusy
	}
	if !reserved {
		return errorx.New(errorx.CodeCodeTooFrequent, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	if err := u.sms.SendVerificationCode(ctx, req.Phone, code); err != nil {
		zap.L().Error("验证码下发失败", zap.Error(err), zap.String("phone", req.Phone))
		// 回滚占位，否则有效期内无法重发
		if _, delErr := u.cache.CompareAndDelete(ctx, key, code); delErr != nil {
			zap.L().Error("回滚验证码失败", zap.Error(delErr))
		}
		return errorx.ErrServerBusy
	}
	return nil
}

// verifyCode 校验并消费验证码
// 比较与删除是一次原子操作，同一验证码只有一个请求能通过
func (u *userInfoService) verifyCode(ctx context.Context, purpose request.CodePurpose, phone, code string) error {
	if code == "" {
		return errorx.New(errorx.CodeInvalidCode, "验证码不正确或已过期")
	}
	consumed, err := u.cache.CompareAndDelete(ctx, codeKey(purpose, phone), code)
	if err != nil {
		zap.L().Error("校验验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !consumed {
		return errorx.New(errorx.CodeInvalidCode, "验证码不正确或已过期")
	}
	return nil
}

// findUser 按查询函数查找用户，查不到时返回 CodeUserNotExist
func (u *userInfoService) findUser(ctx context.Context, find func(context.Context, string) (*model.UserInfo, error), key string) (*model.UserInfo, error) {
	user, err := find(ctx, key)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Status == model.UserStatusDisabled {
		return nil, errorx.New(errorx.CodeUnauthorized, "账号已被禁用")
	}
	return user, nil
}

// Login 登录
// pwd：account 为手机号或邮箱；code：手机号 + 登录验证码
func (u *userInfoService) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	switch req.Type {
	case request.LoginTypePassword:
		find := u.repos.User.FindByPhone
		if strings.Contains(req.Account, "@") {
			find = u.repos.User.FindByEmail
		}
		user, err := u.findUser(ctx, find, req.Account)
		if err != nil {
			return nil, err
		}
		if !user.CheckPassword(req.Password) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
		}
		return u.issueSession(ctx, user, string(request.LoginTypePassword))

	case request.LoginTypeCode:
		user, err := u.findUser(ctx, u.repos.User.FindByPhone, req.Phone)
		if err != nil {
			return nil, err
		}
		if err := u.verifyCode(ctx, request.CodePurposeLogin, req.Phone, req.Code); err != nil {
			return nil, err
		}
		return u.issueSession(ctx, user, string(request.LoginTypeCode))

	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的登录方式 %q", req.Type)
	}
}

// Register 注册
func (u *userInfoService) Register(ctx context.Context, req request.RegisterRequest) (*respond.LoginRespond, error) {
	if !request.IsValidPhone(req.Phone) {
		return nil, errorx.New(errorx.CodeInvalidParam, "手机号格式不正确")
	}
	if err := u.checkNotExist(ctx, u.repos.User.FindByPhone, req.Phone, "该电话已经存在，注册失败"); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := u.checkNotExist(ctx, u.repos.User.FindByEmail, req.Email, "该邮箱已经存在，注册失败"); err != nil {
			return nil, err
		}
	}
	if err := u.verifyCode(ctx, request.CodePurposeRegister, req.Phone, req.Code); err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = "用户" + req.Phone[len(req.Phone)-4:]
	}
	user := &model.UserInfo{
		Uuid:     uuid.NewString(),
		Nickname: nickname,
		Phone:    model.NullableString(req.Phone),
		Email:    model.NullableString(req.Email),
		Avatar:   u.opts.DefaultAvatar,
		Status:   model.UserStatusNormal,
	}
	if err := user.SetPassword(req.Password); err != nil {
		zap.L().Error("密码加密失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err := u.repos.User.Create(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errorx.GetCode(err) == errorx.CodeUserExist {
			return nil, errorx.New(errorx.CodeUserExist, "该电话或邮箱已经存在，注册失败")
		}
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	zap.L().Info("用户注册成功", zap.String("uuid", user.Uuid))
	return u.issueSession(ctx, user, "register")
}

// checkNotExist 检查用户不存在
func (u *userInfoService) checkNotExist(ctx context.Context, find func(context.Context, string) (*model.UserInfo, error), key, msg string) error {
	_, err := find(ctx, key)
	if err == nil {
		return errorx.New(errorx.CodeUserExist, msg)
	}
	if errorx.IsNotFound(err) {
		return nil
	}
	zap.L().Error("查询用户失败", zap.Error(err))
	return errorx.ErrServerBusy
}

// ResetPassword 重置密码
// 成功后已有会话失效，需要重新登录
func (u *userInfoService) ResetPassword(ctx context.Context, req request.ResetPasswordRequest) error {
	user, err := u.findUser(ctx, u.repos.User.FindByPhone, req.Phone)
	if err != nil {
		return err
	}
	if err := u.verifyCode(ctx, request.CodePurposeResetPassword, req.Phone, req.Code); err != nil {
		return err
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		zap.L().Error("密码加密失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := u.repos.User.UpdatePassword(ctx, user.Uuid, user.Password); err != nil {
		zap.L().Error("更新密码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := u.cache.Delete(ctx, auth.SessionKey(user.Uuid)); err != nil {
		zap.L().Error("清除会话失败", zap.Error(err))
	}
	return nil
}

// wechatOpenID 联调环境下不请求微信接口，直接由授权码换算 openid
func wechatOpenID(code string) string {
	sum := sha256.Sum256([]byte(code))
	return "wx_" + hex.EncodeToString(sum[:])[:28]
}

// WechatLogin 微信登录
func (u *userInfoService) WechatLogin(ctx context.Context, req request.WechatLoginRequest) (*respond.LoginRespond, error) {
	openID := wechatOpenID(req.Code)
	user, err := u.repos.User.FindByWechatOpenID(ctx, openID)
	if err != nil {
		if !errorx.IsNotFound(err) {
			zap.L().Error("查询微信用户失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		user = &model.UserInfo{
			Uuid:         uuid.NewString(),
			Nickname:     u.opts.DefaultNickname,
			Avatar:       u.opts.DefaultAvatar,
			WechatOpenID: model.NullableString(openID),
			Status:       model.UserStatusNormal,
		}
		if user, err = u.createWechatUser(ctx, user); err != nil {
			return nil, err
		}
	}
	if user.Status == model.UserStatusDisabled {
		return nil, errorx.New(errorx.CodeUnauthorized, "账号已被禁用")
	}
	return u.issueSession(ctx, user, "wechat")
}

// createWechatUser 创建微信用户；并发首次登录时 openid 冲突，改为读取已创建的用户
func (u *userInfoService) createWechatUser(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error) {
	err := u.repos.User.Create(ctx, user)
	if err == nil {
		zap.L().Info("微信用户首次登录，已自动注册", zap.String("uuid", user.Uuid))
		return user, nil
	}
	if errorx.GetCode(err) != errorx.CodeUserExist {
		zap.L().Error("创建微信用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	existing, err := u.repos.User.FindByWechatOpenID(ctx, model.StringValue(user.WechatOpenID))
	if err != nil {
		zap.L().Error("查询微信用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return existing, nil
}

// issueSession 签发 Token 并记录为该用户唯一有效会话
func (u *userInfoService) issueSession(ctx context.Context, user *model.UserInfo, method string) (*respond.LoginRespond, error) {
	token, err := u.rotateToken(ctx, user.Uuid)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := u.repos.User.UpdateLastLogin(ctx, user.Uuid, now); err != nil {
		zap.L().Warn("更新登录时间失败", zap.Error(err))
	}
	u.publish(ctx, mq.AccountEvent{Type: mq.EventLogin, UserID: user.Uuid, Method: method, At: now})

	return &respond.LoginRespond{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

// rotateToken 生成新 Token，并用新 Token ID 覆盖旧值，实现单点互踢
func (u *userInfoService) rotateToken(ctx context.Context, userID string) (string, error) {
	token, tokenID, err := jwt.GenerateToken(userID)
	if err != nil {
		zap.L().Error("生成 Token 失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	if err := u.cache.Set(ctx, auth.SessionKey(userID), tokenID, jwt.TokenExpiry()); err != nil {
		zap.L().Error("存储 Token ID 失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return token, nil
}

// publish 投递账号事件，失败只记日志
func (u *userInfoService) publish(ctx context.Context, event mq.AccountEvent) {
	if err := u.events.Publish(ctx, event); err != nil {
		zap.L().Warn("账号事件投递失败", zap.String("type", event.Type), zap.Error(err))
	}
}

// Logout 退出登录
func (u *userInfoService) Logout(ctx context.Context, userID string) error {
	if err := u.cache.Delete(ctx, auth.SessionKey(userID)); err != nil {
		zap.L().Error("删除会话失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	u.publish(ctx, mq.AccountEvent{Type: mq.EventLogout, UserID: userID, At: u.now()})
	return nil
}

// RefreshToken 刷新 Token
func (u *userInfoService) RefreshToken(ctx context.Context, userID string) (*respond.RefreshTokenRespond, error) {
	if _, err := u.findUser(ctx, u.repos.User.FindByUuid, userID); err != nil {
		return nil, err
	}
	token, err := u.rotateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{Token: token}, nil
}

// GetUserInfo 获取用户信息
func (u *userInfoService) GetUserInfo(ctx context.Context, userID string) (*respond.UserInfo, error) {
	user, err := u.findUser(ctx, u.repos.User.FindByUuid, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

func toUserInfo(user *model.UserInfo) respond.UserInfo {
	return respond.UserInfo{
		ID:       user.Uuid,
		Email:    model.StringValue(user.Email),
		Phone:    model.StringValue(user.Phone),
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
	}
}
