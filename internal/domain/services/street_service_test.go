package services

import (
	"testing"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreetService(t *testing.T) {
	db := newTestDB(t)
	org, street, _, _, _ := seedHierarchy(t, db)
	svc := NewStreetService(db, newTestConfig())

	t.Run("按小区查询街道", func(t *testing.T) {
		streets, total, err := svc.GetStreetsByOrganizationID(org.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, streets, 1)
		assert.Equal(t, street.StreetName, streets[0].StreetName)
	})

	t.Run("创建街道默认状态为active", func(t *testing.T) {
		s := models.Street{
			StreetName:     "玉兰街",
			StreetCode:     "YL-01",
			OrganizationID: org.ID,
		}
		require.NoError(t, svc.CreateStreet(&s))
		assert.Equal(t, "active", s.Status)
	})

	t.Run("同一小区内街道编码唯一", func(t *testing.T) {
		dup := models.Street{
			StreetName:     "重复街",
			StreetCode:     street.StreetCode,
			OrganizationID: org.ID,
		}
		assert.Error(t, svc.CreateStreet(&dup))
	})

	t.Run("更新街道编码检查唯一性", func(t *testing.T) {
		_, err := svc.UpdateStreet(street.ID, map[string]interface{}{"street_code": "YL-01"})
		assert.Error(t, err)

		updated, err := svc.UpdateStreet(street.ID, map[string]interface{}{"street_name": "紫荆大街"})
		require.NoError(t, err)
		assert.Equal(t, "紫荆大街", updated.StreetName)
	})

	t.Run("有地块的街道不能删除", func(t *testing.T) {
		err := svc.DeleteStreet(street.ID)
		assert.Error(t, err)
	})

	t.Run("空街道可以删除", func(t *testing.T) {
		empty := models.Street{
			StreetName:     "待拆街",
			StreetCode:     "DC-01",
			OrganizationID: org.ID,
		}
		require.NoError(t, svc.CreateStreet(&empty))
		require.NoError(t, svc.DeleteStreet(empty.ID))

		_, err := svc.GetStreetByID(empty.ID)
		assert.Error(t, err)
	})

	t.Run("获取街道下的地块", func(t *testing.T) {
		plots, err := svc.GetStreetPlots(street.ID)
		require.NoError(t, err)
		assert.Len(t, plots, 1)
	})

	t.Run("街道不存在", func(t *testing.T) {
		_, err := svc.GetStreetByID(99999)
		assert.Error(t, err)
	})
}
