package services

import (
	"errors"
	"time"

	"gated-community-http-service/internal/domain/models"
	"gated-community-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// RecipientTarget 表示通知的接收目标，封闭的四种投放范围之一。
// 通过构造函数创建，保证类型和ID语义一致，避免裸的(type, id)组合导致跨类型混用。
type RecipientTarget struct {
	recipientType string
	recipientID   uint
}

// TargetAll 面向全小区的目标，接收方ID在创建通知时由小区ID填充
func TargetAll() RecipientTarget {
	return RecipientTarget{recipientType: models.RecipientTypeAll}
}

// TargetStreet 面向指定街道的目标
func TargetStreet(streetID uint) RecipientTarget {
	return RecipientTarget{recipientType: models.RecipientTypeStreet, recipientID: streetID}
}

// TargetPlot 面向指定地块的目标
func TargetPlot(plotID uint) RecipientTarget {
	return RecipientTarget{recipientType: models.RecipientTypePlot, recipientID: plotID}
}

// TargetIndividual 面向单个住户的目标
func TargetIndividual(residentID uint) RecipientTarget {
	return RecipientTarget{recipientType: models.RecipientTypeIndividual, recipientID: residentID}
}

// ParseRecipientTarget 从原始的(recipient_type, recipient_id)组合解析出接收目标。
// all类型不需要调用方提供ID；其余类型必须提供非零ID。
func ParseRecipientTarget(recipientType string, recipientID *uint) (RecipientTarget, error) {
	switch recipientType {
	case models.RecipientTypeAll:
		return TargetAll(), nil
	case models.RecipientTypeStreet, models.RecipientTypePlot, models.RecipientTypeIndividual:
		if recipientID == nil || *recipientID == 0 {
			return RecipientTarget{}, errors.New("该接收范围必须提供接收方ID")
		}
		return RecipientTarget{recipientType: recipientType, recipientID: *recipientID}, nil
	default:
		return RecipientTarget{}, errors.New("无效的接收范围类型")
	}
}

// Type 返回接收范围类型
func (t RecipientTarget) Type() string {
	return t.recipientType
}

// columns 返回写入通知行的(recipient_type, recipient_id)。
// all类型用小区ID作为接收方ID，与查询端的all分支保持一致。
func (t RecipientTarget) columns(orgID uint) (string, uint) {
	if t.recipientType == models.RecipientTypeAll {
		return t.recipientType, orgID
	}
	return t.recipientType, t.recipientID
}

// InterfaceNotificationService 定义通知服务接口
type InterfaceNotificationService interface {
	ResolveHierarchy(plotID uint, userID uint) (streetID *uint, residentID *uint, err error)
	GetUserFeed(orgID uint, plotID uint, userID uint) ([]models.Notification, error)
	MarkNotificationRead(id uint) (*models.Notification, error)
	CreateNotification(orgID uint, senderID uint, target RecipientTarget, title, content, priority string) (*models.Notification, error)
	GetNotificationByID(id uint) (*models.Notification, error)
	GetAllNotifications(page, pageSize int) ([]models.Notification, int64, error)
}

// NotificationService 提供通知投放与查询相关的服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 ResolveHierarchy 解析用户在小区层级中的坐标：
// 由地块ID得到所属街道ID，由登录账号ID得到关联的住户ID。
// 两次查询相互独立；地块或住户关联缺失不是错误，对应坐标返回nil，
// 只是让后续匹配时跳过相应的投放分支（例如管理员账号没有住户关联，
// 就永远收不到individual范围的通知）。
func (s *NotificationService) ResolveHierarchy(plotID uint, userID uint) (*uint, *uint, error) {
	var streetID *uint
	var residentID *uint

	var plot models.Plot
	err := s.DB.Select("street_id").First(&plot, plotID).Error
	if err == nil {
		sid := plot.StreetID
		streetID = &sid
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var user models.User
	err = s.DB.Select("resident_id").First(&user, userID).Error
	if err == nil {
		residentID = user.ResidentID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	return streetID, residentID, nil
}

// 2 GetUserFeed 获取用户可见的通知列表。
// 先解析层级坐标，再用一条查询并联四个投放分支：
//   - 全小区通知（recipient_id = 小区ID）
//   - 街道通知（recipient_id = 街道ID，街道坐标缺失时跳过）
//   - 地块通知（recipient_id = 地块ID）
//   - 住户通知（recipient_id = 住户ID，住户坐标缺失时跳过）
// 每行的recipient_type本身参与条件，四个分支互斥，不会产生重复行。
// 结果按创建时间倒序，时间相同时按插入顺序排列。空列表是正常结果。
func (s *NotificationService) GetUserFeed(orgID uint, plotID uint, userID uint) ([]models.Notification, error) {
	streetID, residentID, err := s.ResolveHierarchy(plotID, userID)
	if err != nil {
		return nil, err
	}

	cond := s.DB.Where("recipient_type = ? AND recipient_id = ?", models.RecipientTypeAll, orgID).
		Or("recipient_type = ? AND recipient_id = ?", models.RecipientTypePlot, plotID)
	if streetID != nil {
		cond = cond.Or("recipient_type = ? AND recipient_id = ?", models.RecipientTypeStreet, *streetID)
	}
	if residentID != nil {
		cond = cond.Or("recipient_type = ? AND recipient_id = ?", models.RecipientTypeIndividual, *residentID)
	}

	var notifications []models.Notification
	if err := s.DB.Where(cond).Order("created_at DESC, id ASC").Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

// 3 MarkNotificationRead 将通知置为已读并记录已读时间。
// 对已读通知重复调用会覆盖已读时间（最后写入生效），这是沿用的既有行为。
func (s *NotificationService) MarkNotificationRead(id uint) (*models.Notification, error) {
	notification, err := s.GetNotificationByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  models.NotificationStatusRead,
		"read_at": now,
	}
	if err := s.DB.Model(notification).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetNotificationByID(id)
}

// 4 CreateNotification 创建一条新通知，状态固定为未读。
// 接收目标由RecipientTarget保证类型合法；street/plot/individual类型的
// 接收方ID是否真实存在由管理端在选择目标时保证，这里不再跨表校验。
func (s *NotificationService) CreateNotification(orgID uint, senderID uint, target RecipientTarget, title, content, priority string) (*models.Notification, error) {
	if title == "" {
		return nil, errors.New("通知标题不能为空")
	}
	if content == "" {
		return nil, errors.New("通知内容不能为空")
	}
	if priority == "" {
		priority = models.NotificationPriorityMedium
	}

	recipientType, recipientID := target.columns(orgID)
	notification := &models.Notification{
		Title:         title,
		Content:       content,
		Priority:      priority,
		RecipientType: recipientType,
		RecipientID:   recipientID,
		SenderID:      senderID,
		Status:        models.NotificationStatusUnread,
	}

	if err := s.DB.Create(notification).Error; err != nil {
		return nil, err
	}

	return notification, nil
}

// 5 GetNotificationByID 根据ID获取通知
func (s *NotificationService) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.DB.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("通知不存在")
		}
		return nil, err
	}
	return &notification, nil
}

// 6 GetAllNotifications 获取所有通知（管理端），支持分页
func (s *NotificationService) GetAllNotifications(page, pageSize int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := s.DB.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Order("created_at DESC, id ASC").Limit(pageSize).Offset(offset).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}
