package models

import "time"

// Message 合作会话消息表
type Message struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	MessageID    string    `gorm:"uniqueIndex;not null" json:"message_id"` // 公开 ID
	CollabID     uint      `gorm:"index;not null" json:"-"`
	SenderUserID uint      `gorm:"index;not null" json:"-"`
	SenderType   string    `gorm:"not null" json:"sender_type"` // brand / influencer
	Content      string    `gorm:"type:text;not null" json:"content"`
	ThreadLocked bool      `gorm:"default:false" json:"thread_locked"` // 争议期间锁定
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
