package models

import (
	"time"
)

// 通知接收范围类型
const (
	RecipientTypeAll        = "all"        // 全小区
	RecipientTypeStreet     = "street"     // 指定街道
	RecipientTypePlot       = "plot"       // 指定地块
	RecipientTypeIndividual = "individual" // 指定住户
)

// 通知状态
const (
	NotificationStatusUnread = "unread" // 未读
	NotificationStatusRead   = "read"   // 已读
)

// 通知优先级
const (
	NotificationPriorityHigh   = "high"   // 高
	NotificationPriorityMedium = "medium" // 中
	NotificationPriorityLow    = "low"    // 低
)

// Notification 表示通知信息
type Notification struct {
	BaseModel
	Title         string     `gorm:"type:varchar(100);not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Priority      string     `gorm:"type:varchar(10);default:'medium'" json:"priority"`       // 优先级：high, medium, low
	RecipientType string     `gorm:"type:varchar(20);not null" json:"recipient_type"`         // 接收范围：all, street, plot, individual
	RecipientID   uint       `gorm:"not null" json:"recipient_id"`                            // 接收方ID，含义取决于接收范围类型
	SenderID      uint       `json:"sender_id"`                                               // 发送者账号ID
	Status        string     `gorm:"type:varchar(10);default:'unread'" json:"status"`         // 状态：unread, read
	ReadAt        *time.Time `json:"read_at,omitempty"`                                       // 已读时间，未读时为空
}

// ValidRecipientType 判断接收范围类型是否合法
func ValidRecipientType(recipientType string) bool {
	switch recipientType {
	case RecipientTypeAll, RecipientTypeStreet, RecipientTypePlot, RecipientTypeIndividual:
		return true
	}
	return false
}
