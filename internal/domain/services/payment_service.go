package services

import (
	"errors"
	"time"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfacePaymentService 定义缴费服务接口
type InterfacePaymentService interface {
	GetAllPayments(page, pageSize int, status string) ([]models.Payment, int64, error)
	GetPaymentsByResidentID(residentID uint, page, pageSize int) ([]models.Payment, int64, error)
	GetPaymentByID(id uint) (*models.Payment, error)
	CreatePayment(payment *models.Payment) error
	MarkPaymentPaid(id uint) (*models.Payment, error)
	GetPaymentStatistics() (map[string]interface{}, error)
}

// PaymentService 提供缴费相关的服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllPayments 获取所有缴费记录，支持分页和按状态过滤
func (s *PaymentService) GetAllPayments(page, pageSize int, status string) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := s.DB.Model(&models.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Resident").Order("due_date DESC").Limit(pageSize).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// 2 GetPaymentsByResidentID 获取指定住户的缴费记录
func (s *PaymentService) GetPaymentsByResidentID(residentID uint, page, pageSize int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	if err := s.DB.Model(&models.Payment{}).Where("resident_id = ?", residentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("resident_id = ?", residentID).Order("due_date DESC").Limit(pageSize).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// 3 GetPaymentByID 根据ID获取缴费记录
func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Resident").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("缴费记录不存在")
		}
		return nil, err
	}
	return &payment, nil
}

// 4 CreatePayment 创建新缴费记录
func (s *PaymentService) CreatePayment(payment *models.Payment) error {
	// 验证住户是否存在
	var resident models.Resident
	if err := s.DB.First(&resident, payment.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("住户不存在")
		}
		return err
	}

	// 地块ID跟随住户
	payment.PlotID = resident.PlotID

	// 设置默认状态
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	return s.DB.Create(payment).Error
}

// 5 MarkPaymentPaid 将缴费记录标记为已缴，生成缴费凭证号
func (s *PaymentService) MarkPaymentPaid(id uint) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusPaid {
		return nil, errors.New("缴费记录已缴清")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.PaymentStatusPaid,
		"paid_date":      now,
		"receipt_number": uuid.New().String(),
	}
	if err := s.DB.Model(payment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetPaymentByID(id)
}

// 6 GetPaymentStatistics 获取缴费统计信息（管理端看板）
func (s *PaymentService) GetPaymentStatistics() (map[string]interface{}, error) {
	var total, paid, pending, overdue int64

	if err := s.DB.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPaid).Count(&paid).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPending).Count(&pending).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusOverdue).Count(&overdue).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total":   total,
		"paid":    paid,
		"pending": pending,
		"overdue": overdue,
	}, nil
}
