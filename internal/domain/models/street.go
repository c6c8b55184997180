package models

// Street 表示街道信息
type Street struct {
	BaseModel
	StreetName     string `gorm:"type:varchar(50);not null" json:"street_name"`     // 街道名称，如"紫荆街"
	StreetCode     string `gorm:"type:varchar(20);not null" json:"street_code"`     // 街道编码，如"S001"，同一小区内唯一
	OrganizationID uint   `gorm:"not null" json:"organization_id"`                  // 所属小区ID
	Status         string `gorm:"type:varchar(20);default:'active'" json:"status"`  // 状态：active, inactive

	// 关联关系
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"` // 所属小区（多对一）
	Plots        []Plot        `gorm:"foreignKey:StreetID" json:"plots,omitempty"`              // 街道下的地块（一对多）
}
