package service

import (
	"strings"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
)

// MessageService 合作会话服务
type MessageService struct {
	messageRepo repository.MessageRepository
	collabRepo  repository.CollaborationRepository
	appRepo     repository.ApplicationRepository
	disputeRepo repository.DisputeRepository
}

// NewMessageService 创建消息服务
func NewMessageService(messageRepo repository.MessageRepository, collabRepo repository.CollaborationRepository, appRepo repository.ApplicationRepository, disputeRepo repository.DisputeRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		collabRepo:  collabRepo,
		appRepo:     appRepo,
		disputeRepo: disputeRepo,
	}
}

// Send 发送消息
// 会话在申请被接受后开启，争议期间锁定
func (s *MessageService) Send(collabID string, senderUserID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	collab, role, err := s.openThread(collabID, senderUserID)
	if err != nil {
		return nil, err
	}

	open, err := s.disputeRepo.GetOpenByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrThreadLocked
	}

	message := &models.Message{
		MessageID:    models.NewPublicID(constants.IDPrefixMessage),
		CollabID:     collab.ID,
		SenderUserID: senderUserID,
		SenderType:   role,
		Content:      content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// List 获取会话消息
func (s *MessageService) List(collabID string, requesterUserID uint) ([]models.Message, error) {
	collab, _, err := s.openThread(collabID, requesterUserID)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.ListByCollab(collab.ID)
}

// openThread 校验会话可用：参与方且存在已接受的申请
func (s *MessageService) openThread(collabID string, userID uint) (*models.Collaboration, string, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, "", err
	}
	if collab == nil {
		return nil, "", ErrCollabNotFound
	}

	role, err := participantRole(s.appRepo, collab, userID)
	if err != nil {
		return nil, "", err
	}
	if role == "" {
		return nil, "", ErrMessagingNotOpen
	}

	if role == constants.UserTypeBrand {
		accepted, err := s.appRepo.ListAcceptedByCollab(collab.ID)
		if err != nil {
			return nil, "", err
		}
		if len(accepted) == 0 {
			return nil, "", ErrMessagingNotOpen
		}
	}
	return collab, role, nil
}
