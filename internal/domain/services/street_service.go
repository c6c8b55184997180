package services

import (
	"errors"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceStreetService 定义街道服务接口
type InterfaceStreetService interface {
	GetAllStreets(page, pageSize int) ([]models.Street, int64, error)
	GetStreetsByOrganizationID(organizationID uint, page, pageSize int) ([]models.Street, int64, error)
	GetStreetByID(id uint) (*models.Street, error)
	CreateStreet(street *models.Street) error
	UpdateStreet(id uint, updates map[string]interface{}) (*models.Street, error)
	DeleteStreet(id uint) error
	GetStreetPlots(streetID uint) ([]models.Plot, error)
}

// StreetService 提供街道相关的服务
type StreetService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewStreetService 创建一个新的街道服务
func NewStreetService(db *gorm.DB, cfg *config.Config) InterfaceStreetService {
	return &StreetService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllStreets 获取所有街道列表，支持分页
func (s *StreetService) GetAllStreets(page, pageSize int) ([]models.Street, int64, error) {
	var streets []models.Street
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Street{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&streets).Error; err != nil {
		return nil, 0, err
	}

	return streets, total, nil
}

// 2 GetStreetsByOrganizationID 获取指定小区下的街道列表
func (s *StreetService) GetStreetsByOrganizationID(organizationID uint, page, pageSize int) ([]models.Street, int64, error) {
	var streets []models.Street
	var total int64

	if err := s.DB.Model(&models.Street{}).Where("organization_id = ?", organizationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("organization_id = ?", organizationID).Limit(pageSize).Offset(offset).Find(&streets).Error; err != nil {
		return nil, 0, err
	}

	return streets, total, nil
}

// 3 GetStreetByID 根据ID获取街道
func (s *StreetService) GetStreetByID(id uint) (*models.Street, error) {
	var street models.Street
	if err := s.DB.Preload("Organization").First(&street, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("街道不存在")
		}
		return nil, err
	}
	return &street, nil
}

// 4 CreateStreet 创建新街道
func (s *StreetService) CreateStreet(street *models.Street) error {
	// 验证街道编码唯一性（同一小区内编码不能重复）
	var count int64
	if err := s.DB.Model(&models.Street{}).Where("organization_id = ? AND street_code = ?", street.OrganizationID, street.StreetCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("该小区下已存在相同街道编码")
	}

	// 设置默认状态
	if street.Status == "" {
		street.Status = "active"
	}

	return s.DB.Create(street).Error
}

// 5 UpdateStreet 更新街道信息
func (s *StreetService) UpdateStreet(id uint, updates map[string]interface{}) (*models.Street, error) {
	street, err := s.GetStreetByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新街道编码，需要检查唯一性
	if streetCode, ok := updates["street_code"].(string); ok && streetCode != street.StreetCode {
		var count int64
		if err := s.DB.Model(&models.Street{}).Where("organization_id = ? AND street_code = ? AND id != ?", street.OrganizationID, streetCode, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("该小区下已存在相同街道编码")
		}
	}

	if err := s.DB.Model(street).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的街道信息
	return s.GetStreetByID(id)
}

// 6 DeleteStreet 删除街道
func (s *StreetService) DeleteStreet(id uint) error {
	street, err := s.GetStreetByID(id)
	if err != nil {
		return err
	}

	// 检查是否有关联的地块
	var plotCount int64
	if err := s.DB.Model(&models.Plot{}).Where("street_id = ?", id).Count(&plotCount).Error; err != nil {
		return err
	}
	if plotCount > 0 {
		return errors.New("该街道下存在地块，无法删除")
	}

	return s.DB.Delete(street).Error
}

// 7 GetStreetPlots 获取街道下的地块
func (s *StreetService) GetStreetPlots(streetID uint) ([]models.Plot, error) {
	// 检查街道是否存在
	if _, err := s.GetStreetByID(streetID); err != nil {
		return nil, err
	}

	var plots []models.Plot
	if err := s.DB.Where("street_id = ?", streetID).Find(&plots).Error; err != nil {
		return nil, err
	}

	return plots, nil
}
