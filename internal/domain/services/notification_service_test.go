package services

import (
	"testing"
	"time"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedNotification 插入一条指定投放范围和创建时间的通知
func seedNotification(t *testing.T, db *gorm.DB, title, recipientType string, recipientID uint, createdAt time.Time) models.Notification {
	t.Helper()

	n := models.Notification{
		Title:         title,
		Content:       title + "正文",
		Priority:      models.NotificationPriorityMedium,
		RecipientType: recipientType,
		RecipientID:   recipientID,
		SenderID:      1,
		Status:        models.NotificationStatusUnread,
	}
	n.CreatedAt = createdAt
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestResolveHierarchy(t *testing.T) {
	db := newTestDB(t)
	org, street, plot, resident, user := seedHierarchy(t, db)
	svc := NewNotificationService(db, newTestConfig())

	t.Run("完整层级", func(t *testing.T) {
		streetID, residentID, err := svc.ResolveHierarchy(plot.ID, user.ID)
		require.NoError(t, err)
		require.NotNil(t, streetID)
		assert.Equal(t, street.ID, *streetID)
		require.NotNil(t, residentID)
		assert.Equal(t, resident.ID, *residentID)
	})

	t.Run("地块不存在时街道坐标为空", func(t *testing.T) {
		streetID, residentID, err := svc.ResolveHierarchy(99999, user.ID)
		require.NoError(t, err)
		assert.Nil(t, streetID)
		require.NotNil(t, residentID)
	})

	t.Run("账号未关联住户时住户坐标为空", func(t *testing.T) {
		admin := models.User{
			Username:       "gatekeeper",
			Password:       "secret123",
			Email:          "gatekeeper@example.com",
			Role:           models.RoleAdmin,
			OrganizationID: org.ID,
			Status:         "active",
		}
		require.NoError(t, db.Create(&admin).Error)

		streetID, residentID, err := svc.ResolveHierarchy(plot.ID, admin.ID)
		require.NoError(t, err)
		require.NotNil(t, streetID)
		assert.Nil(t, residentID)
	})

	t.Run("账号不存在时住户坐标为空", func(t *testing.T) {
		_, residentID, err := svc.ResolveHierarchy(plot.ID, 88888)
		require.NoError(t, err)
		assert.Nil(t, residentID)
	})
}

func TestGetUserFeed(t *testing.T) {
	db := newTestDB(t)
	org, street, plot, resident, user := seedHierarchy(t, db)
	svc := NewNotificationService(db, newTestConfig())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := seedNotification(t, db, "全小区停水通知", models.RecipientTypeAll, org.ID, base)
	b := seedNotification(t, db, "紫荆街道路维修", models.RecipientTypeStreet, street.ID, base.Add(1*time.Hour))
	seedNotification(t, db, "别的地块的通知", models.RecipientTypePlot, 999, base.Add(2*time.Hour))
	d := seedNotification(t, db, "王敏家包裹代收", models.RecipientTypeIndividual, resident.ID, base.Add(3*time.Hour))

	t.Run("四个分支并联且互斥", func(t *testing.T) {
		feed, err := svc.GetUserFeed(org.ID, plot.ID, user.ID)
		require.NoError(t, err)
		require.Len(t, feed, 3)

		// 按创建时间倒序
		assert.Equal(t, d.ID, feed[0].ID)
		assert.Equal(t, b.ID, feed[1].ID)
		assert.Equal(t, a.ID, feed[2].ID)

		// 其他地块的通知绝不出现
		for _, n := range feed {
			assert.NotEqual(t, "别的地块的通知", n.Title)
		}
	})

	t.Run("别的街道和别的住户的通知不可见", func(t *testing.T) {
		// 同一小区下的第二条层级链
		street2 := models.Street{
			BaseModel:      models.BaseModel{ID: 20},
			StreetName:     "海棠街",
			StreetCode:     "HT-01",
			OrganizationID: org.ID,
			Status:         "active",
		}
		require.NoError(t, db.Create(&street2).Error)

		plot2 := models.Plot{
			BaseModel:  models.BaseModel{ID: 200},
			PlotNumber: "B-201",
			StreetID:   street2.ID,
			PlotType:   models.PlotTypeApartment,
			Status:     "active",
		}
		require.NoError(t, db.Create(&plot2).Error)

		resident2 := models.Resident{
			BaseModel: models.BaseModel{ID: 2000},
			Name:      "李强",
			Phone:     "13900002222",
			PlotID:    plot2.ID,
			Status:    "active",
		}
		require.NoError(t, db.Create(&resident2).Error)

		plot2ID := plot2.ID
		resident2ID := resident2.ID
		user2 := models.User{
			BaseModel:      models.BaseModel{ID: 6000},
			Username:       "liqiang",
			Password:       "secret123",
			Email:          "liqiang@example.com",
			Role:           models.RoleOwner,
			OrganizationID: org.ID,
			PlotID:         &plot2ID,
			ResidentID:     &resident2ID,
			Status:         "active",
		}
		require.NoError(t, db.Create(&user2).Error)

		e := seedNotification(t, db, "海棠街绿化修剪", models.RecipientTypeStreet, street2.ID, base.Add(4*time.Hour))
		f := seedNotification(t, db, "李强家水表更换", models.RecipientTypeIndividual, resident2.ID, base.Add(4*time.Hour))

		feed, err := svc.GetUserFeed(org.ID, plot2.ID, user2.ID)
		require.NoError(t, err)
		require.Len(t, feed, 3)

		// 自己街道、自己住户和全小区的通知可见
		assert.Equal(t, e.ID, feed[0].ID)
		assert.Equal(t, f.ID, feed[1].ID)
		assert.Equal(t, a.ID, feed[2].ID)

		// 街道一和住户一千的通知绝不出现
		for _, n := range feed {
			assert.NotEqual(t, b.ID, n.ID)
			assert.NotEqual(t, d.ID, n.ID)
		}

		// 反向：第一条链的账号也看不到第二条链的定向通知
		feed1, err := svc.GetUserFeed(org.ID, plot.ID, user.ID)
		require.NoError(t, err)
		for _, n := range feed1 {
			assert.NotEqual(t, e.ID, n.ID)
			assert.NotEqual(t, f.ID, n.ID)
		}
	})

	t.Run("同一时刻按插入顺序排列", func(t *testing.T) {
		same := base.Add(5 * time.Hour)
		first := seedNotification(t, db, "同时刻一", models.RecipientTypeAll, org.ID, same)
		second := seedNotification(t, db, "同时刻二", models.RecipientTypeAll, org.ID, same)

		feed, err := svc.GetUserFeed(org.ID, plot.ID, user.ID)
		require.NoError(t, err)
		require.True(t, len(feed) >= 2)
		assert.Equal(t, first.ID, feed[0].ID)
		assert.Equal(t, second.ID, feed[1].ID)
	})

	t.Run("坐标缺失时跳过对应分支", func(t *testing.T) {
		admin := models.User{
			Username:       "steward",
			Password:       "secret123",
			Email:          "steward@example.com",
			Role:           models.RoleAdmin,
			OrganizationID: org.ID,
			Status:         "active",
		}
		require.NoError(t, db.Create(&admin).Error)

		// 管理员没有地块和住户关联，只能看到全小区通知
		feed, err := svc.GetUserFeed(org.ID, 0, admin.ID)
		require.NoError(t, err)
		for _, n := range feed {
			assert.Equal(t, models.RecipientTypeAll, n.RecipientType)
		}
	})

	t.Run("没有匹配时返回空列表", func(t *testing.T) {
		feed, err := svc.GetUserFeed(77777, 0, 88888)
		require.NoError(t, err)
		assert.Empty(t, feed)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	db := newTestDB(t)
	org, _, _, resident, _ := seedHierarchy(t, db)
	svc := NewNotificationService(db, newTestConfig())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	a := seedNotification(t, db, "全小区通知", models.RecipientTypeAll, org.ID, base)
	d := seedNotification(t, db, "个人通知", models.RecipientTypeIndividual, resident.ID, base.Add(time.Hour))

	t.Run("置为已读并记录时间", func(t *testing.T) {
		got, err := svc.MarkNotificationRead(d.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusRead, got.Status)
		require.NotNil(t, got.ReadAt)

		// 其他通知不受影响
		other, err := svc.GetNotificationByID(a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusUnread, other.Status)
		assert.Nil(t, other.ReadAt)
	})

	t.Run("重复标记覆盖已读时间", func(t *testing.T) {
		first, err := svc.GetNotificationByID(d.ID)
		require.NoError(t, err)
		require.NotNil(t, first.ReadAt)

		time.Sleep(10 * time.Millisecond)

		again, err := svc.MarkNotificationRead(d.ID)
		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusRead, again.Status)
		require.NotNil(t, again.ReadAt)
		assert.True(t, !again.ReadAt.Before(*first.ReadAt))
	})

	t.Run("通知不存在", func(t *testing.T) {
		_, err := svc.MarkNotificationRead(99999)
		assert.Error(t, err)
	})
}

func TestCreateNotification(t *testing.T) {
	db := newTestDB(t)
	org, street, _, _, user := seedHierarchy(t, db)
	svc := NewNotificationService(db, newTestConfig())

	t.Run("全小区通知用小区ID作为接收方", func(t *testing.T) {
		n, err := svc.CreateNotification(org.ID, user.ID, TargetAll(), "停电通知", "明日检修", "")
		require.NoError(t, err)
		assert.Equal(t, models.RecipientTypeAll, n.RecipientType)
		assert.Equal(t, org.ID, n.RecipientID)
		assert.Equal(t, models.NotificationStatusUnread, n.Status)
		assert.Equal(t, models.NotificationPriorityMedium, n.Priority)
		assert.Nil(t, n.ReadAt)
	})

	t.Run("街道通知", func(t *testing.T) {
		n, err := svc.CreateNotification(org.ID, user.ID, TargetStreet(street.ID), "街道通知", "道路维修", models.NotificationPriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, models.RecipientTypeStreet, n.RecipientType)
		assert.Equal(t, street.ID, n.RecipientID)
		assert.Equal(t, models.NotificationPriorityHigh, n.Priority)
	})

	t.Run("标题不能为空", func(t *testing.T) {
		_, err := svc.CreateNotification(org.ID, user.ID, TargetAll(), "", "正文", "")
		assert.Error(t, err)
	})

	t.Run("内容不能为空", func(t *testing.T) {
		_, err := svc.CreateNotification(org.ID, user.ID, TargetAll(), "标题", "", "")
		assert.Error(t, err)
	})
}

func TestParseRecipientTarget(t *testing.T) {
	streetID := uint(10)

	t.Run("all类型无需提供ID", func(t *testing.T) {
		target, err := ParseRecipientTarget(models.RecipientTypeAll, nil)
		require.NoError(t, err)
		assert.Equal(t, models.RecipientTypeAll, target.Type())
	})

	t.Run("street类型必须提供ID", func(t *testing.T) {
		_, err := ParseRecipientTarget(models.RecipientTypeStreet, nil)
		assert.Error(t, err)

		target, err := ParseRecipientTarget(models.RecipientTypeStreet, &streetID)
		require.NoError(t, err)
		assert.Equal(t, models.RecipientTypeStreet, target.Type())
	})

	t.Run("零值ID视为缺失", func(t *testing.T) {
		zero := uint(0)
		_, err := ParseRecipientTarget(models.RecipientTypePlot, &zero)
		assert.Error(t, err)
	})

	t.Run("未知类型", func(t *testing.T) {
		_, err := ParseRecipientTarget("building", &streetID)
		assert.Error(t, err)
	})
}
