package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrapf(cause, CodeNetworkError, "请求 %s 失败", "user/login")

	assert.Equal(t, "请求 user/login 失败: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeNetworkError, GetCode(fmt.Errorf("outer: %w", err)))
}

func TestGetCode_DefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("plain")))
	assert.Equal(t, CodeInvalidParam, GetCode(ErrInvalidParam))
	assert.Equal(t, "验证码错误", Newf(CodeInvalidCode, "验证码%s", "错误").Msg)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeNotFound, "x")))
	assert.True(t, IsNotFound(errors.New("record not found")))
	assert.False(t, IsNotFound(ErrServerBusy))
	assert.False(t, IsNotFound(nil))
}
