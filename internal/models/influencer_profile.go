package models

import "time"

// InfluencerProfile 达人档案表
type InfluencerProfile struct {
	ID                     uint        `gorm:"primarykey" json:"-"`
	UserID                 uint        `gorm:"uniqueIndex;not null" json:"-"`
	Username               string      `gorm:"uniqueIndex;not null" json:"username"`
	Bio                    string      `gorm:"type:text" json:"bio"`
	Niches                 StringArray `gorm:"type:json" json:"niches"`
	Platforms              StringArray `gorm:"type:json" json:"platforms"`
	AudienceSize           int64       `gorm:"default:0" json:"audience_size"`
	EngagementRate         float64     `gorm:"default:0" json:"engagement_rate"`
	PricePerPost           *Money      `gorm:"type:decimal(20,2)" json:"price_per_post"`
	PreviousCollaborations StringArray `gorm:"type:json" json:"previous_collaborations"`
	AvgRating              float64     `gorm:"default:0" json:"avg_rating"` // 已揭示评价均分（1 位小数）
	ReviewCount            int         `gorm:"default:0" json:"review_count"`
	Available              bool        `gorm:"default:true" json:"available"`
	FeaturedPosts          StringArray `gorm:"type:json" json:"featured_posts"`
	CreatedAt              time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// TableName 指定表名
func (InfluencerProfile) TableName() string {
	return "influencer_profiles"
}
