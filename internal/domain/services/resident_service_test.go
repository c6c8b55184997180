package services

import (
	"testing"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidentService(t *testing.T) {
	db := newTestDB(t)
	org, _, plot, resident, user := seedHierarchy(t, db)
	svc := NewResidentService(db, newTestConfig())

	t.Run("手机号唯一", func(t *testing.T) {
		dup := models.Resident{
			Name:   "李雷",
			Phone:  resident.Phone,
			PlotID: plot.ID,
		}
		assert.Error(t, svc.CreateResident(&dup))
	})

	t.Run("地块不存在时拒绝创建", func(t *testing.T) {
		r := models.Resident{
			Name:   "李雷",
			Phone:  "13700002222",
			PlotID: 99999,
		}
		assert.Error(t, svc.CreateResident(&r))
	})

	t.Run("缺少地块ID时拒绝创建", func(t *testing.T) {
		r := models.Resident{
			Name:  "李雷",
			Phone: "13700002222",
		}
		assert.Error(t, svc.CreateResident(&r))
	})

	t.Run("正常创建", func(t *testing.T) {
		r := models.Resident{
			Name:   "李雷",
			Phone:  "13700002222",
			PlotID: plot.ID,
		}
		require.NoError(t, svc.CreateResident(&r))
		assert.NotZero(t, r.ID)
	})

	t.Run("更新手机号检查唯一性", func(t *testing.T) {
		_, err := svc.UpdateResident(resident.ID, map[string]interface{}{"phone": "13700002222"})
		assert.Error(t, err)
	})

	t.Run("绑定与解绑登录账号", func(t *testing.T) {
		r := models.Resident{
			Name:   "韩梅",
			Phone:  "13600003333",
			PlotID: plot.ID,
		}
		require.NoError(t, svc.CreateResident(&r))

		account := models.User{
			Username:       "hanmei",
			Password:       "secret123",
			Email:          "hanmei@example.com",
			Role:           models.RoleTenant,
			OrganizationID: org.ID,
			Status:         "active",
		}
		require.NoError(t, db.Create(&account).Error)

		require.NoError(t, svc.LinkUser(r.ID, account.ID))

		// 双向关联建立
		var linked models.User
		require.NoError(t, db.First(&linked, account.ID).Error)
		require.NotNil(t, linked.ResidentID)
		assert.Equal(t, r.ID, *linked.ResidentID)
		require.NotNil(t, linked.PlotID)
		assert.Equal(t, plot.ID, *linked.PlotID)

		got, err := svc.GetResidentByID(r.ID)
		require.NoError(t, err)
		require.NotNil(t, got.UserID)
		assert.Equal(t, account.ID, *got.UserID)

		// 已关联其他住户的账号不能重复绑定
		another := models.Resident{
			Name:   "赵强",
			Phone:  "13500004444",
			PlotID: plot.ID,
		}
		require.NoError(t, svc.CreateResident(&another))
		assert.Error(t, svc.LinkUser(another.ID, account.ID))

		// 解绑后双向关联都清除
		require.NoError(t, svc.UnlinkUser(r.ID))

		require.NoError(t, db.First(&linked, account.ID).Error)
		assert.Nil(t, linked.ResidentID)
		assert.Nil(t, linked.PlotID)

		got, err = svc.GetResidentByID(r.ID)
		require.NoError(t, err)
		assert.Nil(t, got.UserID)

		// 重复解绑报错
		assert.Error(t, svc.UnlinkUser(r.ID))
	})

	t.Run("删除住户清除账号关联", func(t *testing.T) {
		require.NoError(t, svc.DeleteResident(resident.ID))

		var account models.User
		require.NoError(t, db.First(&account, user.ID).Error)
		assert.Nil(t, account.ResidentID)

		_, err := svc.GetResidentByID(resident.ID)
		assert.Error(t, err)
	})
}
