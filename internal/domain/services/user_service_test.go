package services

import (
	"testing"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := newTestDB(t)
	org, _, _, _, user := seedHierarchy(t, db)
	svc := NewUserService(db, newTestConfig())

	t.Run("创建时密码被哈希", func(t *testing.T) {
		u := models.User{
			Username:       "zhaoqiang",
			Password:       "plainpass",
			Email:          "zhaoqiang@example.com",
			Role:           models.RoleOwner,
			OrganizationID: org.ID,
			Status:         "active",
		}
		require.NoError(t, svc.CreateUser(&u))
		assert.NotEqual(t, "plainpass", u.Password)
		assert.True(t, svc.CheckPassword("plainpass", u.Password))
	})

	t.Run("用户名唯一", func(t *testing.T) {
		dup := models.User{
			Username:       user.Username,
			Password:       "secret123",
			Email:          "other@example.com",
			OrganizationID: org.ID,
		}
		assert.Error(t, svc.CreateUser(&dup))
	})

	t.Run("邮箱唯一", func(t *testing.T) {
		dup := models.User{
			Username:       "another",
			Password:       "secret123",
			Email:          user.Email,
			OrganizationID: org.ID,
		}
		assert.Error(t, svc.CreateUser(&dup))
	})

	t.Run("搜索用户名", func(t *testing.T) {
		users, total, err := svc.GetAllUsers(1, 10, "wangmin")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, user.Username, users[0].Username)
	})

	t.Run("修改密码校验旧密码", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, "wrongpass", "newpass123")
		assert.Error(t, err)

		require.NoError(t, svc.ChangePassword(user.ID, "secret123", "newpass123"))

		got, err := svc.GetUserByID(user.ID)
		require.NoError(t, err)
		assert.True(t, svc.CheckPassword("newpass123", got.Password))
	})

	t.Run("通过更新接口修改密码会被哈希", func(t *testing.T) {
		updated, err := svc.UpdateUser(user.ID, map[string]interface{}{"password": "updatedpass"})
		require.NoError(t, err)
		assert.True(t, svc.CheckPassword("updatedpass", updated.Password))
	})

	t.Run("删除账号清除住户关联", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(user.ID))

		var resident models.Resident
		require.NoError(t, db.First(&resident, 1000).Error)
		assert.Nil(t, resident.UserID)
	})
}
