package models

import (
	"gorm.io/gorm"
)

// 登录账号角色
const (
	RoleAdmin  = "admin"  // 小区管理员
	RoleOwner  = "owner"  // 业主
	RoleTenant = "tenant" // 租客
)

// User 表示登录账号信息
type User struct {
	BaseModel
	Username       string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password       string `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Email          string `gorm:"type:varchar(100);unique" json:"email"`
	Phone          string `gorm:"type:varchar(20)" json:"phone"`
	Role           string `gorm:"type:varchar(20);default:'owner'" json:"role"`    // 角色：admin, owner, tenant
	OrganizationID uint   `gorm:"not null" json:"organization_id"`                 // 所属小区ID
	PlotID         *uint  `json:"plot_id,omitempty"`                               // 关联的地块ID，管理员账号可以为空
	ResidentID     *uint  `json:"resident_id,omitempty"`                           // 关联的住户ID，管理员账号可以为空
	Status         string `gorm:"type:varchar(20);default:'active'" json:"status"` // 状态：active, inactive, locked

	// 关联关系
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"` // 所属小区（多对一）
	Plot         *Plot         `gorm:"foreignKey:PlotID" json:"plot,omitempty"`                 // 关联的地块（多对一）
	Resident     *Resident     `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`         // 关联的住户（一对一）
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 创建时BeforeSave已经处理过哈希，这里只兜底未哈希的情况
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// IsAdmin 判断账号是否为小区管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
