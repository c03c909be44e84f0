package models

import "time"

// Escrow 资金托管表
// 不变式：PlatformCommission + InfluencerPayout == TotalAmount（尾差计入 payout）
type Escrow struct {
	ID                    uint       `gorm:"primarykey" json:"-"`
	EscrowID              string     `gorm:"uniqueIndex;not null" json:"escrow_id"` // 公开 ID
	CollabID              uint       `gorm:"index;not null" json:"-"`
	BrandUserID           uint       `gorm:"index;not null" json:"-"`
	TotalAmount           Money      `gorm:"type:decimal(20,2);not null" json:"total_amount"`
	CommissionRate        float64    `gorm:"not null" json:"commission_rate"` // 创建时刻费率快照（百分比）
	PlatformCommission    Money      `gorm:"type:decimal(20,2);not null" json:"platform_commission"`
	InfluencerPayout      Money      `gorm:"type:decimal(20,2);not null" json:"influencer_payout"`
	Status                string     `gorm:"index;default:'pending'" json:"status"`
	PaymentReference      string     `gorm:"default:''" json:"payment_reference"`
	RefundAmount          *Money     `gorm:"type:decimal(20,2)" json:"refund_amount"`
	SplitInfluencerAmount *Money     `gorm:"type:decimal(20,2)" json:"split_influencer_amount"`
	SplitBrandAmount      *Money     `gorm:"type:decimal(20,2)" json:"split_brand_amount"`
	SecuredAt             *time.Time `json:"secured_at"`
	ReleaseScheduledAt    *time.Time `json:"release_scheduled_at"`
	ReleasedAt            *time.Time `json:"released_at"`
	RefundedAt            *time.Time `json:"refunded_at"`
	CreatedAt             time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Escrow) TableName() string {
	return "escrows"
}
