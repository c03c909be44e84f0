package models

import "time"

// Collaboration 合作表
type Collaboration struct {
	ID                uint        `gorm:"primarykey" json:"-"`
	CollabID          string      `gorm:"uniqueIndex;not null" json:"collab_id"` // 公开 ID
	BrandUserID       uint        `gorm:"index;not null" json:"-"`
	BrandName         string      `gorm:"default:''" json:"brand_name"`
	Title             string      `gorm:"not null" json:"title"`
	Description       string      `gorm:"type:text" json:"description"`
	Deliverables      StringArray `gorm:"type:json" json:"deliverables"`
	BudgetMin         *Money      `gorm:"type:decimal(20,2)" json:"budget_min"`
	BudgetMax         *Money      `gorm:"type:decimal(20,2)" json:"budget_max"`
	Deadline          *time.Time  `json:"deadline"`
	Platform          string      `gorm:"default:''" json:"platform"`
	CreatorsNeeded    int         `gorm:"default:1" json:"creators_needed"`
	CollaborationType string      `gorm:"index;not null" json:"collaboration_type"` // paid / barter / free，创建后不可变
	Status            string      `gorm:"index;default:'active'" json:"status"`
	PaymentStatus     string      `gorm:"index;default:'none'" json:"payment_status"`
	IsPublic          bool        `gorm:"default:true" json:"is_public"`
	ApplicantsCount   int         `gorm:"default:0" json:"applicants_count"`
	ReleaseScheduledAt *time.Time `json:"release_scheduled_at"` // 确认窗口到期时间
	CompletedAt       *time.Time  `json:"completed_at"`
	CancelledAt       *time.Time  `json:"cancelled_at"`
	DisputedAt        *time.Time  `json:"disputed_at"`
	ReleasedAt        *time.Time  `json:"released_at"`
	CreatedAt         time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// TableName 指定表名
func (Collaboration) TableName() string {
	return "collaborations"
}
