package mysql

import (
	"testing"

	"kama_account_client/internal/config"
	"kama_account_client/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.MysqlConfig{Host: "db", Port: 3306, User: "root", Password: "pw", DatabaseName: "kama"})
	assert.Equal(t, "root:pw@tcp(db:3306)/kama?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestInit_StoreModes(t *testing.T) {
	conf := config.Default()
	repos, err := Init(conf)
	require.NoError(t, err)
	require.NotNil(t, repos.User)

	conf.StoreConfig.UserStore = "sqlite"
	_, err = Init(conf)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}
