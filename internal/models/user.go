package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（品牌方 / 达人 / 管理员共用）
type User struct {
	ID                 uint           `gorm:"primarykey" json:"-"`
	UserID             string         `gorm:"uniqueIndex;not null" json:"user_id"` // 公开 ID
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"default:''" json:"name"`
	UserType           string         `gorm:"index;not null" json:"user_type"` // brand / influencer
	IsAdmin            bool           `gorm:"default:false" json:"is_admin"`
	IsPro              bool           `gorm:"default:false" json:"is_pro"`
	ProExpiresAt       *time.Time     `json:"pro_expires_at"`
	Picture            string         `gorm:"type:varchar(500)" json:"picture"`
	Locale             string         `gorm:"default:'ro-RO'" json:"locale"`
	Status             string         `gorm:"default:'active'" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
