package models

import "time"

// Application 合作申请表
type Application struct {
	ID                   uint        `gorm:"primarykey" json:"-"`
	ApplicationID        string      `gorm:"uniqueIndex;not null" json:"application_id"` // 公开 ID
	CollabID             uint        `gorm:"index:idx_applications_collab_influencer,unique;not null" json:"-"`
	InfluencerUserID     uint        `gorm:"index:idx_applications_collab_influencer,unique;not null" json:"-"`
	InfluencerName       string      `gorm:"default:''" json:"influencer_name"`
	InfluencerUsername   string      `gorm:"default:''" json:"influencer_username"`
	Message              string      `gorm:"type:text" json:"message"`
	SelectedDeliverables StringArray `gorm:"type:json" json:"selected_deliverables"`
	ProposedPrice        *Money      `gorm:"type:decimal(20,2)" json:"proposed_price"`
	Status               string      `gorm:"index;default:'pending'" json:"status"` // pending / accepted / rejected
	CreatedAt            time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`

	Collaboration *Collaboration `gorm:"foreignKey:CollabID" json:"-"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "applications"
}
