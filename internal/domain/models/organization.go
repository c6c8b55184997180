package models

// Organization 表示小区（顶层租户）信息
type Organization struct {
	BaseModel
	OrgName string `gorm:"type:varchar(100);not null" json:"org_name"`       // 小区名称，如"翡翠湾小区"
	OrgCode string `gorm:"type:varchar(20);unique;not null" json:"org_code"` // 小区编码，如"ORG001"
	Address string `gorm:"type:varchar(200)" json:"address"`                 // 小区地址
	Status  string `gorm:"type:varchar(20);default:'active'" json:"status"`  // 状态：active, inactive

	// 关联关系
	Streets []Street `gorm:"foreignKey:OrganizationID" json:"streets,omitempty"` // 小区下的街道（一对多）
	Users   []User   `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`   // 小区下的登录账号（一对多）
}
