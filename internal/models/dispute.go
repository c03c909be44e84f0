package models

import "time"

// Dispute 争议表
type Dispute struct {
	ID                    uint       `gorm:"primarykey" json:"-"`
	DisputeID             string     `gorm:"uniqueIndex;not null" json:"dispute_id"` // 公开 ID
	CollabID              uint       `gorm:"index;not null" json:"-"`
	OpenedByUserID        uint       `gorm:"index;not null" json:"-"`
	OpenedByRole          string     `gorm:"not null" json:"opened_by_role"` // brand / influencer
	Reason                string     `gorm:"default:''" json:"reason"`
	Details               string     `gorm:"type:text" json:"details"`
	Status                string     `gorm:"index;default:'open'" json:"status"` // open / under_review / resolved
	Resolution            string     `gorm:"default:''" json:"resolution"`
	SplitInfluencerAmount *Money     `gorm:"type:decimal(20,2)" json:"split_influencer_amount"`
	SplitBrandAmount      *Money     `gorm:"type:decimal(20,2)" json:"split_brand_amount"`
	AdminNotes            string     `gorm:"type:text" json:"admin_notes"`
	ResolvedAt            *time.Time `json:"resolved_at"`
	CreatedAt             time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Dispute) TableName() string {
	return "disputes"
}
