package random

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"kama_account_client/pkg/constants"
)

// GetRandomInt 生成指定位数的安全随机数字（用于验证码）
func GetRandomInt(length int) int {
	// 计算范围：例如 length=6 时，范围是 100000-999999
	min := int64(1)
	for i := 1; i < length; i++ {
		min *= 10
	}
	max := min * 10

	// 生成 [min, max) 范围的随机数
	rangeSize := big.NewInt(max - min)
	n, err := rand.Int(rand.Reader, rangeSize)
	if err != nil {
		return int(min) // fallback
	}
	return int(n.Int64() + min)
}

// GetRandomCode 生成指定位数的数字验证码字符串
func GetRandomCode(length int) string {
	if length <= 0 {
		length = constants.DEFAULT_CODE_LENGTH
	}
	return strconv.Itoa(GetRandomInt(length))
}
