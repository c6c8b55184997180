package models

import (
	"time"
)

// 缴费类型
const (
	PaymentTypeMaintenance = "maintenance" // 物业费
	PaymentTypeWater       = "water"       // 水费
	PaymentTypeElectricity = "electricity" // 电费
	PaymentTypeOther       = "other"       // 其他
)

// 缴费状态
const (
	PaymentStatusPending = "pending" // 待缴费
	PaymentStatusPaid    = "paid"    // 已缴费
	PaymentStatusOverdue = "overdue" // 已逾期
)

// Payment 表示缴费记录
type Payment struct {
	BaseModel
	ResidentID    uint       `gorm:"not null" json:"resident_id"`                         // 缴费住户ID
	PlotID        uint       `gorm:"not null" json:"plot_id"`                             // 关联的地块ID
	PaymentType   string     `gorm:"type:varchar(20);not null" json:"payment_type"`       // 缴费类型：maintenance, water, electricity, other
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`           // 金额（元）
	Status        string     `gorm:"type:varchar(20);default:'pending'" json:"status"`    // 状态：pending, paid, overdue
	DueDate       time.Time  `json:"due_date"`                                            // 应缴日期
	PaidDate      *time.Time `json:"paid_date,omitempty"`                                 // 实缴日期，未缴时为空
	ReceiptNumber string     `gorm:"type:varchar(50)" json:"receipt_number"`              // 缴费凭证号
	Remark        string     `gorm:"type:varchar(200)" json:"remark"`                     // 备注

	// 关联关系
	Resident *Resident `gorm:"foreignKey:ResidentID" json:"resident,omitempty"` // 缴费住户（多对一）
	Plot     *Plot     `gorm:"foreignKey:PlotID" json:"plot,omitempty"`         // 关联的地块（多对一）
}
