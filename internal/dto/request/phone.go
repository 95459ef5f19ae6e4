package request

import "regexp"

var mobilePattern = regexp.MustCompile(`^1([38][0-9]|14[579]|5[^4]|16[6]|7[1-35-8]|9[189])\d{8}$`)

// IsValidPhone 校验中国大陆手机号
// 供服务层校验和参数绑定的 mobile 规则共用
func IsValidPhone(phone string) bool {
	return mobilePattern.MatchString(phone)
}
