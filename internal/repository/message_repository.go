package repository

import (
	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	Create(message *models.Message) error
	ListByCollab(collabID uint) ([]models.Message, error)
	SetThreadLocked(collabID uint, locked bool) error
	WithTx(tx *gorm.DB) *GormMessageRepository
}

// GormMessageRepository GORM 实现
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMessageRepository) WithTx(tx *gorm.DB) *GormMessageRepository {
	if tx == nil {
		return r
	}
	return &GormMessageRepository{db: tx}
}

// Create 创建消息
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByCollab 获取合作会话的全部消息
func (r *GormMessageRepository) ListByCollab(collabID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("collab_id = ?", collabID).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SetThreadLocked 锁定 / 解锁合作会话
func (r *GormMessageRepository) SetThreadLocked(collabID uint, locked bool) error {
	return r.db.Model(&models.Message{}).Where("collab_id = ?", collabID).
		Update("thread_locked", locked).Error
}
