package services

import (
	"strings"
	"testing"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceService(t *testing.T) {
	db := newTestDB(t)
	_, _, plot, resident, _ := seedHierarchy(t, db)
	svc := NewMaintenanceService(db, newTestConfig())

	t.Run("创建工单自动生成工单号", func(t *testing.T) {
		r := models.MaintenanceRequest{
			ResidentID:  resident.ID,
			Title:       "水管漏水",
			Description: "厨房水槽下方水管接口处渗水",
			Category:    "plumbing",
		}
		require.NoError(t, svc.CreateRequest(&r))
		assert.True(t, strings.HasPrefix(r.TicketNumber, "MR-"))
		assert.Equal(t, models.MaintenanceStatusOpen, r.Status)
		assert.Equal(t, plot.ID, r.PlotID)
	})

	t.Run("住户不存在时拒绝创建", func(t *testing.T) {
		r := models.MaintenanceRequest{
			ResidentID:  99999,
			Title:       "灯不亮",
			Description: "楼道感应灯失效",
		}
		assert.Error(t, svc.CreateRequest(&r))
	})

	t.Run("状态流转", func(t *testing.T) {
		r := models.MaintenanceRequest{
			ResidentID:  resident.ID,
			Title:       "门禁故障",
			Description: "单元门禁刷卡无反应",
		}
		require.NoError(t, svc.CreateRequest(&r))

		updated, err := svc.UpdateRequestStatus(r.ID, models.MaintenanceStatusInProgress, "已安排师傅明日上门")
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusInProgress, updated.Status)
		assert.Equal(t, "已安排师傅明日上门", updated.AdminNote)

		updated, err = svc.UpdateRequestStatus(r.ID, models.MaintenanceStatusResolved, "")
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusResolved, updated.Status)
		// 不传备注时保留原备注
		assert.Equal(t, "已安排师傅明日上门", updated.AdminNote)
	})

	t.Run("不合法的状态被拒绝", func(t *testing.T) {
		r := models.MaintenanceRequest{
			ResidentID:  resident.ID,
			Title:       "噪音投诉",
			Description: "深夜装修噪音",
		}
		require.NoError(t, svc.CreateRequest(&r))

		_, err := svc.UpdateRequestStatus(r.ID, "cancelled", "")
		assert.Error(t, err)
	})

	t.Run("按住户查询", func(t *testing.T) {
		requests, total, err := svc.GetRequestsByResidentID(resident.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, requests, 3)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		requests, total, err := svc.GetAllRequests(1, 10, models.MaintenanceStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, requests, 1)
		assert.Equal(t, "门禁故障", requests[0].Title)
	})
}
