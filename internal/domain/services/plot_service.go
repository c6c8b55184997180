package services

import (
	"errors"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfacePlotService 定义地块服务接口
type InterfacePlotService interface {
	GetAllPlots(page, pageSize int) ([]models.Plot, int64, error)
	GetPlotsByStreetID(streetID uint, page, pageSize int) ([]models.Plot, int64, error)
	GetPlotByID(id uint) (*models.Plot, error)
	CreatePlot(plot *models.Plot) error
	UpdatePlot(id uint, updates map[string]interface{}) (*models.Plot, error)
	DeletePlot(id uint) error
	GetPlotResidents(plotID uint) ([]models.Resident, error)
}

// PlotService 提供地块相关的服务
type PlotService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPlotService 创建一个新的地块服务
func NewPlotService(db *gorm.DB, cfg *config.Config) InterfacePlotService {
	return &PlotService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllPlots 获取所有地块列表，支持分页
func (s *PlotService) GetAllPlots(page, pageSize int) ([]models.Plot, int64, error) {
	var plots []models.Plot
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Plot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Preload("Street").Limit(pageSize).Offset(offset).Find(&plots).Error; err != nil {
		return nil, 0, err
	}

	return plots, total, nil
}

// 2 GetPlotsByStreetID 获取指定街道下的地块列表
func (s *PlotService) GetPlotsByStreetID(streetID uint, page, pageSize int) ([]models.Plot, int64, error) {
	var plots []models.Plot
	var total int64

	if err := s.DB.Model(&models.Plot{}).Where("street_id = ?", streetID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("street_id = ?", streetID).Preload("Street").Limit(pageSize).Offset(offset).Find(&plots).Error; err != nil {
		return nil, 0, err
	}

	return plots, total, nil
}

// 3 GetPlotByID 根据ID获取地块
func (s *PlotService) GetPlotByID(id uint) (*models.Plot, error) {
	var plot models.Plot
	if err := s.DB.Preload("Street").Preload("Residents").First(&plot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("地块不存在")
		}
		return nil, err
	}
	return &plot, nil
}

// 4 CreatePlot 创建新地块
func (s *PlotService) CreatePlot(plot *models.Plot) error {
	// 验证所属街道是否存在
	var street models.Street
	if err := s.DB.First(&street, plot.StreetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("街道不存在")
		}
		return err
	}

	// 验证门牌号唯一性（同一街道下门牌号不能重复）
	var count int64
	if err := s.DB.Model(&models.Plot{}).Where("street_id = ? AND plot_number = ?", plot.StreetID, plot.PlotNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("该街道下已存在相同门牌号")
	}

	// 设置默认类型和状态
	if plot.PlotType == "" {
		plot.PlotType = models.PlotTypeVilla
	}
	if plot.Status == "" {
		plot.Status = "active"
	}

	return s.DB.Create(plot).Error
}

// 5 UpdatePlot 更新地块信息
func (s *PlotService) UpdatePlot(id uint, updates map[string]interface{}) (*models.Plot, error) {
	plot, err := s.GetPlotByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新门牌号或所属街道，需要检查唯一性
	streetID, hasStreetID := updates["street_id"].(uint)
	plotNumber, hasPlotNumber := updates["plot_number"].(string)

	if (hasStreetID || hasPlotNumber) && (hasStreetID && streetID != plot.StreetID || hasPlotNumber && plotNumber != plot.PlotNumber) {
		// 确定要检查的街道ID
		checkStreetID := plot.StreetID
		if hasStreetID {
			checkStreetID = streetID
		}

		// 确定要检查的门牌号
		checkPlotNumber := plot.PlotNumber
		if hasPlotNumber {
			checkPlotNumber = plotNumber
		}

		// 检查唯一性
		var count int64
		if err := s.DB.Model(&models.Plot{}).Where("street_id = ? AND plot_number = ? AND id != ?", checkStreetID, checkPlotNumber, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("该街道下已存在相同门牌号")
		}
	}

	if err := s.DB.Model(plot).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的地块信息
	return s.GetPlotByID(id)
}

// 6 DeletePlot 删除地块
func (s *PlotService) DeletePlot(id uint) error {
	plot, err := s.GetPlotByID(id)
	if err != nil {
		return err
	}

	// 检查是否有关联的住户
	var residentCount int64
	if err := s.DB.Model(&models.Resident{}).Where("plot_id = ?", id).Count(&residentCount).Error; err != nil {
		return err
	}
	if residentCount > 0 {
		return errors.New("该地块下存在住户，无法删除")
	}

	return s.DB.Delete(plot).Error
}

// 7 GetPlotResidents 获取地块下的住户
func (s *PlotService) GetPlotResidents(plotID uint) ([]models.Resident, error) {
	// 检查地块是否存在
	if _, err := s.GetPlotByID(plotID); err != nil {
		return nil, err
	}

	var residents []models.Resident
	if err := s.DB.Where("plot_id = ?", plotID).Find(&residents).Error; err != nil {
		return nil, err
	}

	return residents, nil
}
