package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kama_account_client/internal/model"
	"kama_account_client/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &model.UserInfo{Uuid: "u-1", Phone: model.NullableString("13800000000"), Email: model.NullableString("a@b.com"), Nickname: "kama"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.FindByUuid(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "kama", got.Nickname)

	got, err = repo.FindByPhone(ctx, "13800000000")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.Uuid)

	got, err = repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.Uuid)

	// 返回副本
	got.Nickname = "changed"
	again, _ := repo.FindByUuid(ctx, "u-1")
	assert.Equal(t, "kama", again.Nickname)

	require.Error(t, repo.Create(ctx, &model.UserInfo{Uuid: "u-1"}))
}

func TestMemoryUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &model.UserInfo{Uuid: "wx", WechatOpenID: model.NullableString("open-1")}))

	_, err := repo.FindByPhone(ctx, "")
	assert.True(t, errorx.IsNotFound(err))
	_, err = repo.FindByEmail(ctx, "none@b.com")
	assert.True(t, errorx.IsNotFound(err))
	_, err = repo.FindByUuid(ctx, "none")
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	got, err := repo.FindByWechatOpenID(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "wx", got.Uuid)

	assert.True(t, errorx.IsNotFound(repo.UpdatePassword(ctx, "none", "h")))
}

func TestMemoryUserRepository_UniqueIdentities(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &model.UserInfo{
		Uuid:  "u-1",
		Phone: model.NullableString("13800000000"),
		Email: model.NullableString("a@b.com"),
	}))

	err := repo.Create(ctx, &model.UserInfo{Uuid: "u-2", Phone: model.NullableString("13800000000")})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
	err = repo.Create(ctx, &model.UserInfo{Uuid: "u-3", Phone: model.NullableString("13900000000"), Email: model.NullableString("a@b.com")})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))

	// 未绑定手机号的微信用户可以有多个
	require.NoError(t, repo.Create(ctx, &model.UserInfo{Uuid: "wx-1", WechatOpenID: model.NullableString("open-1")}))
	require.NoError(t, repo.Create(ctx, &model.UserInfo{Uuid: "wx-2", WechatOpenID: model.NullableString("open-2")}))
	err = repo.Create(ctx, &model.UserInfo{Uuid: "wx-3", WechatOpenID: model.NullableString("open-1")})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestMemoryUserRepository_ConcurrentCreateSamePhone(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := &model.UserInfo{Uuid: fmt.Sprintf("u-%d", i), Phone: model.NullableString("13800000000")}
			if repo.Create(ctx, u) == nil {
				created.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1, created.Load())
}

func TestMemoryUserRepository_Updates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &model.UserInfo{Uuid: "u-1"}))

	require.NoError(t, repo.UpdatePassword(ctx, "u-1", "hash"))
	at := time.Unix(1700000000, 0)
	require.NoError(t, repo.UpdateLastLogin(ctx, "u-1", at))

	got, err := repo.FindByUuid(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)
	assert.True(t, got.LastLoginAt.Valid)
	assert.True(t, at.Equal(got.LastLoginAt.Time))
}
