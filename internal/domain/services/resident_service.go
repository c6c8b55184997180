package services

import (
	"errors"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error)
	GetResidentByID(id uint) (*models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id uint) error
	LinkUser(residentID uint, userID uint) error
	UnlinkUser(residentID uint) error
}

// ResidentService 提供住户相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的住户服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllResidents 获取所有住户
func (s *ResidentService) GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64
	if err := s.DB.Model(&models.Resident{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Plot").Offset((page - 1) * pageSize).Limit(pageSize).Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}

// 2 GetResidentByID 根据ID获取住户
func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.Preload("Plot").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}
	return &resident, nil
}

// 3 CreateResident 创建新住户
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	// 验证手机号唯一性
	var count int64
	if err := s.DB.Model(&models.Resident{}).Where("phone = ?", resident.Phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("手机号已被使用")
	}

	// 验证地块是否存在
	if resident.PlotID > 0 {
		var plot models.Plot
		if err := s.DB.First(&plot, resident.PlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("地块不存在")
			}
			return err
		}
	} else {
		return errors.New("必须提供有效的地块ID")
	}

	return s.DB.Create(resident).Error
}

// 4 UpdateResident 更新住户信息
func (s *ResidentService) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新手机号，需要检查唯一性
	if phone, ok := updates["phone"].(string); ok && phone != resident.Phone {
		var count int64
		if err := s.DB.Model(&models.Resident{}).Where("phone = ? AND id != ?", phone, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("手机号已被其他住户使用")
		}
	}

	// 如果更新地块，需要检查地块是否存在
	if plotID, ok := updates["plot_id"].(uint); ok && plotID != resident.PlotID {
		var plot models.Plot
		if err := s.DB.First(&plot, plotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("地块不存在")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetResidentByID(id)
}

// 5 DeleteResident 删除住户
func (s *ResidentService) DeleteResident(id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}

	// 解除登录账号上的住户关联
	if err := s.DB.Model(&models.User{}).Where("resident_id = ?", id).Update("resident_id", nil).Error; err != nil {
		return err
	}

	return s.DB.Delete(resident).Error
}

// 6 LinkUser 将住户关联到登录账号
func (s *ResidentService) LinkUser(residentID uint, userID uint) error {
	resident, err := s.GetResidentByID(residentID)
	if err != nil {
		return err
	}

	// 检查登录账号是否存在
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("账号不存在")
		}
		return err
	}

	// 检查账号是否已关联其他住户
	var count int64
	if err := s.DB.Model(&models.Resident{}).Where("user_id = ? AND id != ?", userID, residentID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("该账号已关联其他住户")
	}

	// 双向建立关联：住户记录指向账号，账号记录指向住户和地块
	if err := s.DB.Model(resident).Update("user_id", userID).Error; err != nil {
		return err
	}
	return s.DB.Model(&user).Updates(map[string]interface{}{
		"resident_id": residentID,
		"plot_id":     resident.PlotID,
	}).Error
}

// 7 UnlinkUser 解除住户与登录账号的关联
func (s *ResidentService) UnlinkUser(residentID uint) error {
	resident, err := s.GetResidentByID(residentID)
	if err != nil {
		return err
	}

	if resident.UserID == nil {
		return errors.New("该住户未关联登录账号")
	}

	if err := s.DB.Model(&models.User{}).Where("id = ?", *resident.UserID).Updates(map[string]interface{}{
		"resident_id": nil,
		"plot_id":     nil,
	}).Error; err != nil {
		return err
	}

	return s.DB.Model(resident).Update("user_id", nil).Error
}
