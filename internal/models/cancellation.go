package models

import "time"

// Cancellation 取消请求表
type Cancellation struct {
	ID                uint       `gorm:"primarykey" json:"-"`
	CancellationID    string     `gorm:"uniqueIndex;not null" json:"cancellation_id"` // 公开 ID
	CollabID          uint       `gorm:"index;not null" json:"-"`
	RequestedByUserID uint       `gorm:"index;not null" json:"-"`
	RequestedByRole   string     `gorm:"not null" json:"requested_by_role"` // brand / influencer
	Reason            string     `gorm:"default:''" json:"reason"`
	Details           string     `gorm:"type:text" json:"details"`
	Status            string     `gorm:"index;not null" json:"status"` // completed / pending_admin_review / resolved
	Resolution        string     `gorm:"default:''" json:"resolution"`
	PartialAmount     *Money     `gorm:"type:decimal(20,2)" json:"partial_amount"`
	AdminNotes        string     `gorm:"type:text" json:"admin_notes"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Cancellation) TableName() string {
	return "cancellations"
}
