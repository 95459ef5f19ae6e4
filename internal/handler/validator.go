package handler

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"kama_account_client/internal/dto/request"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Trans 参数校验提示使用的翻译器
var Trans ut.Translator

// mobileTag 手机号校验规则，用于 phone 字段
const mobileTag = "mobile"

// localeBundle 单个语言的翻译器及其校验提示
type localeBundle struct {
	translator locales.Translator
	register   func(v *validator.Validate, trans ut.Translator) error
	mobileMsg  string
}

var localeBundles = map[string]localeBundle{
	"zh": {translator: zh.New(), register: zh_translations.RegisterDefaultTranslations, mobileMsg: "{0}必须是有效的手机号"},
	"en": {translator: en.New(), register: en_translations.RegisterDefaultTranslations, mobileMsg: "{0} must be a valid mobile number"},
}

// InitTrans 初始化参数校验
// 注册 mobile 规则，字段名取 json tag，提示语言为 zh 或 en，其他值按 en 处理
func InitTrans(locale string) error {
	if binding.Validator == nil {
		v := validator.New()
		v.SetTagName("binding")
		binding.Validator = &defaultValidator{validator: v}
	}
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// 提示里使用 json 字段名（如 newPassword）
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(mobileTag, func(fl validator.FieldLevel) bool {
		return request.IsValidPhone(fl.Field().String())
	}); err != nil {
		return err
	}

	bundle, ok := localeBundles[locale]
	if !ok {
		bundle = localeBundles["en"]
	}
	uni := ut.New(bundle.translator, bundle.translator)
	trans, _ := uni.GetTranslator(bundle.translator.Locale())
	if err := bundle.register(v, trans); err != nil {
		return err
	}
	err := v.RegisterTranslation(mobileTag, trans,
		func(ut ut.Translator) error {
			return ut.Add(mobileTag, bundle.mobileMsg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(mobileTag, fe.Field())
			return msg
		},
	)
	if err != nil {
		return err
	}
	Trans = trans
	return nil
}

// translateValidationErrors 将校验错误翻译成一条提示，按字段名排序，多条以 "; " 分隔
func translateValidationErrors(errs validator.ValidationErrors) string {
	sorted := make(validator.ValidationErrors, len(errs))
	copy(sorted, errs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Field() < sorted[j].Field() })

	msgs := make([]string, 0, len(sorted))
	for _, fe := range sorted {
		if Trans != nil {
			msgs = append(msgs, fe.Translate(Trans))
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

// defaultValidator 在 gin 尚未初始化默认校验器时使用
type defaultValidator struct {
	validator *validator.Validate
}

func (v *defaultValidator) ValidateStruct(obj any) error {
	return v.validator.Struct(obj)
}

func (v *defaultValidator) Engine() any {
	return v.validator
}
