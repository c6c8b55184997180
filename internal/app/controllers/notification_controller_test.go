package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gated-community-http-service/internal/app/routes"
	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiResponse 统一响应格式
type apiResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// setupTestRouter 构建带内存数据库的完整路由
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Street{},
		&models.Plot{},
		&models.Resident{},
		&models.User{},
		&models.Notification{},
		&models.Payment{},
		&models.MaintenanceRequest{},
	)
	require.NoError(t, err)

	cfg := &config.Config{JWTSecretKey: "test-secret-key"}
	r := routes.SetupRouter(db, cfg, nil)
	return r, db
}

// seedCommunity 构建小区层级和两个登录账号：管理员与关联住户的业主
func seedCommunity(t *testing.T, db *gorm.DB) {
	t.Helper()

	org := models.Organization{BaseModel: models.BaseModel{ID: 1}, OrgName: "翠湖雅苑", OrgCode: "CHYY", Status: "active"}
	require.NoError(t, db.Create(&org).Error)

	street := models.Street{BaseModel: models.BaseModel{ID: 10}, StreetName: "紫荆街", StreetCode: "ZJ-01", OrganizationID: 1, Status: "active"}
	require.NoError(t, db.Create(&street).Error)

	plot := models.Plot{BaseModel: models.BaseModel{ID: 100}, PlotNumber: "A-101", StreetID: 10, PlotType: models.PlotTypeVilla, Status: "active"}
	require.NoError(t, db.Create(&plot).Error)

	resident := models.Resident{BaseModel: models.BaseModel{ID: 1000}, Name: "王敏", Phone: "13900001111", PlotID: 100, Status: "active"}
	require.NoError(t, db.Create(&resident).Error)

	plotID := uint(100)
	residentID := uint(1000)
	owner := models.User{
		BaseModel:      models.BaseModel{ID: 5000},
		Username:       "wangmin",
		Password:       "secret123",
		Email:          "wangmin@example.com",
		Role:           models.RoleOwner,
		OrganizationID: 1,
		PlotID:         &plotID,
		ResidentID:     &residentID,
		Status:         "active",
	}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Model(&models.Resident{}).Where("id = ?", 1000).Update("user_id", 5000).Error)

	admin := models.User{
		Username:       "property_admin",
		Password:       "admin123",
		Email:          "admin@chyy.local",
		Role:           models.RoleAdmin,
		OrganizationID: 1,
		Status:         "active",
	}
	require.NoError(t, db.Create(&admin).Error)
}

// doJSON 发送JSON请求并解析统一响应
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

// login 登录并返回令牌
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	status, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	token, ok := resp.Data["token"].(string)
	require.True(t, ok, "登录响应中缺少令牌")
	return token
}

func TestNotificationFlow(t *testing.T) {
	r, db := setupTestRouter(t)
	seedCommunity(t, db)

	adminToken := login(t, r, "property_admin", "admin123")
	ownerToken := login(t, r, "wangmin", "secret123")

	// 管理员发布四条通知，覆盖四种投放范围；其中地块通知面向别的地块
	publish := func(title, recipientType string, recipientID uint) uint {
		body := gin.H{
			"title":          title,
			"content":        title + "正文",
			"recipient_type": recipientType,
		}
		if recipientType != models.RecipientTypeAll {
			body["recipient_id"] = recipientID
		}
		status, resp := doJSON(t, r, http.MethodPost, "/api/notifications", adminToken, body)
		require.Equal(t, http.StatusOK, status)
		return uint(resp.Data["id"].(float64))
	}

	idA := publish("全小区停水通知", models.RecipientTypeAll, 0)
	time.Sleep(5 * time.Millisecond)
	idB := publish("紫荆街道路维修", models.RecipientTypeStreet, 10)
	time.Sleep(5 * time.Millisecond)
	publish("别的地块的通知", models.RecipientTypePlot, 999)
	time.Sleep(5 * time.Millisecond)
	idD := publish("王敏家包裹代收", models.RecipientTypeIndividual, 1000)

	t.Run("业主获取自己的通知列表", func(t *testing.T) {
		status, resp := doJSON(t, r, http.MethodGet, "/api/notifications/my", ownerToken, nil)
		require.Equal(t, http.StatusOK, status)

		items, ok := resp.Data["data"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 3)

		// 按创建时间倒序，别的地块的通知绝不出现
		first := items[0].(map[string]interface{})
		second := items[1].(map[string]interface{})
		third := items[2].(map[string]interface{})
		assert.Equal(t, float64(idD), first["id"])
		assert.Equal(t, float64(idB), second["id"])
		assert.Equal(t, float64(idA), third["id"])
	})

	t.Run("标记通知已读", func(t *testing.T) {
		status, resp := doJSON(t, r, http.MethodPut, "/api/notifications/"+itoa(idD)+"/read", ownerToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, models.NotificationStatusRead, resp.Data["status"])
		assert.NotNil(t, resp.Data["read_at"])

		// 数据库中的状态已更新
		var n models.Notification
		require.NoError(t, db.First(&n, idD).Error)
		assert.Equal(t, models.NotificationStatusRead, n.Status)
		require.NotNil(t, n.ReadAt)

		// 重新获取列表：缓存已失效，已读状态可见且其他通知不受影响
		status, resp = doJSON(t, r, http.MethodGet, "/api/notifications/my", ownerToken, nil)
		require.Equal(t, http.StatusOK, status)
		items, ok := resp.Data["data"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 3)

		statusByID := make(map[float64]string)
		for _, item := range items {
			m := item.(map[string]interface{})
			statusByID[m["id"].(float64)] = m["status"].(string)
		}
		assert.Equal(t, models.NotificationStatusRead, statusByID[float64(idD)])
		assert.Equal(t, models.NotificationStatusUnread, statusByID[float64(idA)])
		assert.Equal(t, models.NotificationStatusUnread, statusByID[float64(idB)])
	})

	t.Run("业主不能发布通知", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodPost, "/api/notifications", ownerToken, gin.H{
			"title":          "越权通知",
			"content":        "正文",
			"recipient_type": "all",
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("未携带令牌被拒绝", func(t *testing.T) {
		status, _ := doJSON(t, r, http.MethodGet, "/api/notifications/my", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("接收范围参数验证", func(t *testing.T) {
		// street类型缺少接收方ID
		status, _ := doJSON(t, r, http.MethodPost, "/api/notifications", adminToken, gin.H{
			"title":          "无目标通知",
			"content":        "正文",
			"recipient_type": "street",
		})
		assert.Equal(t, http.StatusBadRequest, status)

		// 未知的接收范围类型
		status, _ = doJSON(t, r, http.MethodPost, "/api/notifications", adminToken, gin.H{
			"title":          "未知范围通知",
			"content":        "正文",
			"recipient_type": "building",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

// itoa 把ID拼进URL路径
func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
