package repository

import (
	"errors"

	"kama_account_client/pkg/errorx"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry MySQL 唯一索引冲突错误号
const mysqlDuplicateEntry = 1062

// ==================== 错误包装辅助函数 ====================

// errorCode 根据错误类型选择错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - 唯一索引冲突 -> CodeUserExist
//   - 其他错误 -> CodeDBError
func errorCode(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.CodeNotFound
	}
	if isDuplicateKey(err) {
		return errorx.CodeUserExist
	}
	return errorx.CodeDBError
}

// isDuplicateKey 兼容开启和未开启 TranslateError 两种情况
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// wrapDBError 包装数据库错误
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errorx.Wrap(err, errorCode(err), msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errorx.Wrapf(err, errorCode(err), format, args...)
}
