// Package mysql 提供数据访问层的初始化
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package mysql

import (
	"fmt"

	"kama_account_client/internal/config"               // 配置管理
	"kama_account_client/internal/dao/mysql/repository" // Repository 层
	"kama_account_client/internal/model"                // 数据模型
	"kama_account_client/pkg/errorx"

	"go.uber.org/zap"                  // 日志库
	mysqldriver "gorm.io/driver/mysql" // GORM MySQL 驱动
	"gorm.io/gorm"                     // GORM ORM 框架
)

// 用户存储模式
const (
	UserStoreMemory = "memory"
	UserStoreMysql  = "mysql"
)

// DSN 构建 MySQL 连接字符串
// 格式：user:password@tcp(host:port)/database?params
func DSN(conf config.MysqlConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.User,
		conf.Password,
		conf.Host,
		conf.Port,
		conf.DatabaseName,
	)
}

// Init 按 storeConfig.userStore 初始化 Repository 层
// mysql 模式下执行步骤：
//  1. 构建 DSN 并使用 GORM 建立连接
//  2. 执行 AutoMigrate 自动迁移 user_info 表
//  3. 创建并返回 Repository 实例
func Init(conf *config.Config) (*repository.Repositories, error) {
	switch conf.StoreConfig.UserStore {
	case "", UserStoreMemory:
		zap.L().Info("user store: memory")
		return repository.NewMemoryRepositories(), nil
	case UserStoreMysql:
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown userStore %q", conf.StoreConfig.UserStore)
	}

	db, err := gorm.Open(mysqldriver.Open(DSN(conf.MysqlConfig)), &gorm.Config{
		TranslateError: true, // 唯一索引冲突转为 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDBError, "连接 MySQL 失败")
	}

	// 不存在则建表，不会删除已有字段或数据
	if err := db.AutoMigrate(&model.UserInfo{}); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDBError, "迁移 user_info 表失败")
	}

	zap.L().Info("user store: mysql",
		zap.String("host", conf.MysqlConfig.Host),
		zap.String("database", conf.MysqlConfig.DatabaseName),
	)
	return repository.NewRepositories(db), nil
}
