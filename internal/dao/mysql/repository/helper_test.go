package repository

import (
	"errors"
	"fmt"
	"testing"

	"kama_account_client/pkg/errorx"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapDBError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: gorm.ErrRecordNotFound, want: errorx.CodeNotFound},
		{name: "translated duplicate", err: gorm.ErrDuplicatedKey, want: errorx.CodeUserExist},
		{name: "driver duplicate", err: fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), want: errorx.CodeUserExist},
		{name: "other driver error", err: &mysql.MySQLError{Number: 1045, Message: "Access denied"}, want: errorx.CodeDBError},
		{name: "plain", err: errors.New("boom"), want: errorx.CodeDBError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorx.GetCode(wrapDBError(tt.err, "创建用户")))
			assert.Equal(t, tt.want, errorx.GetCode(wrapDBErrorf(tt.err, "创建用户 %s", "u-1")))
		})
	}
	assert.NoError(t, wrapDBError(nil, "x"))
}
