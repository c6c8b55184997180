package models

// 报修工单状态
const (
	MaintenanceStatusOpen       = "open"        // 待处理
	MaintenanceStatusInProgress = "in_progress" // 处理中
	MaintenanceStatusResolved   = "resolved"    // 已解决
	MaintenanceStatusClosed     = "closed"      // 已关闭
)

// MaintenanceRequest 表示报修工单
type MaintenanceRequest struct {
	BaseModel
	TicketNumber string `gorm:"type:varchar(50);unique;not null" json:"ticket_number"` // 工单号
	ResidentID   uint   `gorm:"not null" json:"resident_id"`                           // 报修住户ID
	PlotID       uint   `gorm:"not null" json:"plot_id"`                               // 关联的地块ID
	Title        string `gorm:"type:varchar(100);not null" json:"title"`               // 报修标题
	Description  string `gorm:"type:text" json:"description"`                          // 问题描述
	Category     string `gorm:"type:varchar(50)" json:"category"`                      // 报修类别，如"水电"、"门禁"
	Status       string `gorm:"type:varchar(20);default:'open'" json:"status"`         // 状态：open, in_progress, resolved, closed
	AdminNote    string `gorm:"type:varchar(200)" json:"admin_note"`                   // 管理员处理备注

	// 关联关系
	Resident *Resident `gorm:"foreignKey:ResidentID" json:"resident,omitempty"` // 报修住户（多对一）
	Plot     *Plot     `gorm:"foreignKey:PlotID" json:"plot,omitempty"`         // 关联的地块（多对一）
}
