package handler

import (
	"errors"
	"net/http"
	"testing"

	"kama_account_client/internal/dto/request"
	"kama_account_client/pkg/errorx"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, obj any) validator.ValidationErrors {
	t.Helper()
	err := binding.Validator.ValidateStruct(obj)
	require.Error(t, err)
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs), "unexpected error %v", err)
	return errs
}

func TestInitTrans_MobileRule(t *testing.T) {
	require.NoError(t, InitTrans("zh"))

	errs := validate(t, request.SendCodeRequest{Phone: "12345", Purpose: request.CodePurposeLogin})
	assert.Equal(t, "phone必须是有效的手机号", translateValidationErrors(errs))

	assert.NoError(t, binding.Validator.ValidateStruct(request.SendCodeRequest{Phone: "13800000000", Purpose: request.CodePurposeLogin}))
}

func TestInitTrans_EnglishAndFallback(t *testing.T) {
	t.Cleanup(func() { _ = InitTrans("zh") })

	for _, locale := range []string{"en", "fr"} {
		require.NoError(t, InitTrans(locale))
		errs := validate(t, request.RegisterRequest{Phone: "1", Password: "123", Code: "c"})
		assert.Equal(t, "password must be at least 6 characters in length; phone must be a valid mobile number", translateValidationErrors(errs), locale)
	}
}

func TestTranslateValidationErrors_SortedByField(t *testing.T) {
	require.NoError(t, InitTrans("zh"))
	errs := validate(t, request.ResetPasswordRequest{})

	msg := translateValidationErrors(errs)
	assert.Equal(t, "code为必填字段; newPassword为必填字段; phone为必填字段", msg)
}

func TestUserHandler_RejectsInvalidPhone(t *testing.T) {
	svc := &stubUserService{}
	env := call(t, newEngine(t, svc), http.MethodPost, "/user/sendCode", `{"phone":"12345","type":"register"}`)

	assert.False(t, env.Success)
	assert.Equal(t, errorx.CodeInvalidParam, env.Code)
	assert.Contains(t, env.Msg, "手机号")
}
