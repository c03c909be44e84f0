package models

import "time"

// Commission 平台佣金流水表（只增不改的审计记录）
type Commission struct {
	ID               uint      `gorm:"primarykey" json:"-"`
	CommissionID     string    `gorm:"uniqueIndex;not null" json:"commission_id"` // 公开 ID
	CollabID         uint      `gorm:"index;not null" json:"-"`
	ApplicationID    uint      `gorm:"index;not null" json:"-"`
	InfluencerUserID uint      `gorm:"index;not null" json:"-"`
	BrandUserID      uint      `gorm:"index;not null" json:"-"`
	GrossAmount      Money     `gorm:"type:decimal(20,2);not null" json:"gross_amount"`
	CommissionRate   float64   `gorm:"not null" json:"commission_rate"`
	CommissionAmount Money     `gorm:"type:decimal(20,2);not null" json:"commission_amount"`
	NetAmount        Money     `gorm:"type:decimal(20,2);not null" json:"net_amount"`
	Source           string    `gorm:"index;not null" json:"source"` // release / dispute_release
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Commission) TableName() string {
	return "commissions"
}
