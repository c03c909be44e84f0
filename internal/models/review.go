package models

import "time"

// Review 评价表（双盲，互评或超时后揭示）
type Review struct {
	ID             uint       `gorm:"primarykey" json:"-"`
	ReviewID       string     `gorm:"uniqueIndex;not null" json:"review_id"` // 公开 ID
	ApplicationID  uint       `gorm:"index:idx_reviews_application_reviewer,unique;not null" json:"-"`
	ReviewerUserID uint       `gorm:"index:idx_reviews_application_reviewer,unique;not null" json:"-"`
	CollabID       uint       `gorm:"index;not null" json:"-"`
	RevieweeUserID uint       `gorm:"index;not null" json:"-"`
	ReviewerType   string     `gorm:"not null" json:"reviewer_type"` // brand / influencer
	Rating         int        `gorm:"not null" json:"rating"`        // 1-5
	Comment        string     `gorm:"type:text" json:"comment"`
	IsRevealed     bool       `gorm:"index;default:false" json:"is_revealed"`
	RevealedAt     *time.Time `json:"revealed_at"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
