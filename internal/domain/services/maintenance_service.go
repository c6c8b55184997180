package services

import (
	"errors"
	"fmt"
	"time"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceMaintenanceService 定义报修服务接口
type InterfaceMaintenanceService interface {
	GetAllRequests(page, pageSize int, status string) ([]models.MaintenanceRequest, int64, error)
	GetRequestsByResidentID(residentID uint, page, pageSize int) ([]models.MaintenanceRequest, int64, error)
	GetRequestByID(id uint) (*models.MaintenanceRequest, error)
	CreateRequest(request *models.MaintenanceRequest) error
	UpdateRequestStatus(id uint, status string, adminNote string) (*models.MaintenanceRequest, error)
}

// MaintenanceService 提供报修工单相关的服务
type MaintenanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMaintenanceService 创建一个新的报修服务
func NewMaintenanceService(db *gorm.DB, cfg *config.Config) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:     db,
		Config: cfg,
	}
}

// 工单状态的合法流转
func validMaintenanceStatus(status string) bool {
	switch status {
	case models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress,
		models.MaintenanceStatusResolved, models.MaintenanceStatusClosed:
		return true
	}
	return false
}

// 1 GetAllRequests 获取所有报修工单，支持分页和按状态过滤
func (s *MaintenanceService) GetAllRequests(page, pageSize int, status string) ([]models.MaintenanceRequest, int64, error) {
	var requests []models.MaintenanceRequest
	var total int64

	query := s.DB.Model(&models.MaintenanceRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Resident").Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// 2 GetRequestsByResidentID 获取指定住户的报修工单
func (s *MaintenanceService) GetRequestsByResidentID(residentID uint, page, pageSize int) ([]models.MaintenanceRequest, int64, error) {
	var requests []models.MaintenanceRequest
	var total int64

	if err := s.DB.Model(&models.MaintenanceRequest{}).Where("resident_id = ?", residentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("resident_id = ?", residentID).Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// 3 GetRequestByID 根据ID获取报修工单
func (s *MaintenanceService) GetRequestByID(id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := s.DB.Preload("Resident").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("报修工单不存在")
		}
		return nil, err
	}
	return &request, nil
}

// 4 CreateRequest 创建新报修工单，自动生成工单号
func (s *MaintenanceService) CreateRequest(request *models.MaintenanceRequest) error {
	// 验证住户是否存在
	var resident models.Resident
	if err := s.DB.First(&resident, request.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("住户不存在")
		}
		return err
	}

	// 地块ID跟随住户
	request.PlotID = resident.PlotID

	// 生成工单号，如"MR-20250901-550e8400"
	request.TicketNumber = fmt.Sprintf("MR-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
	request.Status = models.MaintenanceStatusOpen

	return s.DB.Create(request).Error
}

// 5 UpdateRequestStatus 更新报修工单状态（管理端）
func (s *MaintenanceService) UpdateRequestStatus(id uint, status string, adminNote string) (*models.MaintenanceRequest, error) {
	request, err := s.GetRequestByID(id)
	if err != nil {
		return nil, err
	}

	if !validMaintenanceStatus(status) {
		return nil, errors.New("报修工单状态不合法")
	}

	updates := map[string]interface{}{
		"status": status,
	}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	if err := s.DB.Model(request).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetRequestByID(id)
}
