package models

// Resident 表示住户信息
type Resident struct {
	BaseModel
	Name   string `gorm:"type:varchar(50);not null" json:"name"`           // 住户姓名
	Phone  string `gorm:"type:varchar(20);not null" json:"phone"`          // 联系电话
	Email  string `gorm:"type:varchar(100)" json:"email"`                  // 电子邮箱
	PlotID uint   `gorm:"not null" json:"plot_id"`                         // 所属地块ID
	UserID *uint  `json:"user_id,omitempty"`                               // 关联的登录账号ID，可以为空表示尚未开通账号
	Status string `gorm:"type:varchar(20);default:'active'" json:"status"` // 状态：active, inactive

	// 关联关系
	Plot *Plot `gorm:"foreignKey:PlotID" json:"plot,omitempty"` // 所属地块（多对一）
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联的登录账号（一对一）
}
