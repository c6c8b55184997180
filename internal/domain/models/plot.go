package models

// 地块类型
const (
	PlotTypeVilla     = "villa"     // 独栋住宅
	PlotTypeApartment = "apartment" // 多户单元楼
)

// Plot 表示地块（门牌）信息
type Plot struct {
	BaseModel
	PlotNumber string `gorm:"type:varchar(50);not null" json:"plot_number"`            // 门牌号，如"A-101"，同一街道内唯一
	StreetID   uint   `gorm:"not null" json:"street_id"`                               // 所属街道ID
	PlotType   string `gorm:"type:varchar(20);default:'villa'" json:"plot_type"`       // 地块类型：villa, apartment
	Status     string `gorm:"type:varchar(20);default:'active'" json:"status"`         // 状态：active, inactive

	// 关联关系
	Street    *Street    `gorm:"foreignKey:StreetID" json:"street,omitempty"`  // 所属街道（多对一）
	Residents []Resident `gorm:"foreignKey:PlotID" json:"residents,omitempty"` // 地块下的住户（一对多）
}
