package services

import (
	"testing"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移所有模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

// newTestConfig 返回测试配置
func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
	}
}

// seedHierarchy 构建一条完整的层级链：小区→街道→地块→住户→登录账号。
// 返回各级记录供测试断言使用。
func seedHierarchy(t *testing.T, db *gorm.DB) (models.Organization, models.Street, models.Plot, models.Resident, models.User) {
	t.Helper()

	org := models.Organization{
		BaseModel: models.BaseModel{ID: 1},
		OrgName:   "翠湖雅苑",
		OrgCode:   "CHYY",
		Status:    "active",
	}
	require.NoError(t, db.Create(&org).Error)

	street := models.Street{
		BaseModel:      models.BaseModel{ID: 10},
		StreetName:     "紫荆街",
		StreetCode:     "ZJ-01",
		OrganizationID: org.ID,
		Status:         "active",
	}
	require.NoError(t, db.Create(&street).Error)

	plot := models.Plot{
		BaseModel:  models.BaseModel{ID: 100},
		PlotNumber: "A-101",
		StreetID:   street.ID,
		PlotType:   models.PlotTypeVilla,
		Status:     "active",
	}
	require.NoError(t, db.Create(&plot).Error)

	resident := models.Resident{
		BaseModel: models.BaseModel{ID: 1000},
		Name:      "王敏",
		Phone:     "13900001111",
		PlotID:    plot.ID,
		Status:    "active",
	}
	require.NoError(t, db.Create(&resident).Error)

	plotID := plot.ID
	residentID := resident.ID
	user := models.User{
		BaseModel:      models.BaseModel{ID: 5000},
		Username:       "wangmin",
		Password:       "secret123",
		Email:          "wangmin@example.com",
		Role:           models.RoleOwner,
		OrganizationID: org.ID,
		PlotID:         &plotID,
		ResidentID:     &residentID,
		Status:         "active",
	}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Model(&models.Resident{}).Where("id = ?", resident.ID).Update("user_id", user.ID).Error)

	return org, street, plot, resident, user
}
