package handler

import (
	"errors"
	"net/http"

	"kama_account_client/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResponseData 统一响应信封
// 与客户端 transport.Envelope 字段一一对应
type ResponseData struct {
	Success bool   `json:"success"`        // 业务是否成功
	Code    int    `json:"code"`           // 业务响应状态码
	Msg     string `json:"msg"`            // 提示信息
	Data    any    `json:"data,omitempty"` // 数据
}

// HandleSuccess 返回成功响应
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Code:    errorx.CodeSuccess,
		Msg:     "success",
		Data:    data,
	})
}

// HandleError 通用错误处理方法
// 自动识别 errorx.CodeError 类型的业务错误，或者将系统错误转换为 CodeServerBusy
// 使用示例：
//
//	if err := svc.DoSomething(ctx); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, ResponseData{
			Code: codeErr.Code,
			Msg:  codeErr.Msg,
		})
		return
	}

	// 系统错误或未知错误：记录日志并返回服务繁忙
	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusOK, ResponseData{
		Code: errorx.ErrServerBusy.Code,
		Msg:  errorx.ErrServerBusy.Msg,
	})
}

// HandleParamError 处理参数绑定错误
// 校验错误翻译成一条 msg，其他绑定错误（如 JSON 格式错误）返回通用提示
func HandleParamError(c *gin.Context, err error) {
	msg := errorx.ErrInvalidParam.Msg
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		msg = translateValidationErrors(validationErrs)
	} else {
		zap.L().Warn("param bind error", zap.Error(err))
	}
	c.JSON(http.StatusOK, ResponseData{
		Code: errorx.ErrInvalidParam.Code,
		Msg:  msg,
	})
}
