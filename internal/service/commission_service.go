package service

import (
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
)

// CommissionService 佣金流水查询服务
type CommissionService struct {
	commissionRepo repository.CommissionRepository
	collabRepo     repository.CollaborationRepository
}

// NewCommissionService 创建佣金服务
func NewCommissionService(commissionRepo repository.CommissionRepository, collabRepo repository.CollaborationRepository) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		collabRepo:     collabRepo,
	}
}

// List 查询佣金流水与汇总
func (s *CommissionService) List(filter repository.CommissionListFilter) ([]models.Commission, int64, *repository.CommissionSummary, error) {
	commissions, total, err := s.commissionRepo.List(filter)
	if err != nil {
		return nil, 0, nil, err
	}
	summary, err := s.commissionRepo.Summary(filter)
	if err != nil {
		return nil, 0, nil, err
	}
	return commissions, total, summary, nil
}

// ListForInfluencer 达人查询自己的佣金流水
func (s *CommissionService) ListForInfluencer(influencerUserID uint, filter repository.CommissionListFilter) ([]models.Commission, int64, *repository.CommissionSummary, error) {
	filter.InfluencerUserID = influencerUserID
	filter.BrandUserID = 0
	return s.List(filter)
}

// ListByCollab 品牌方查询合作下的佣金流水
func (s *CommissionService) ListByCollab(collabID string, actorUserID uint) ([]models.Commission, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	return s.commissionRepo.ListByCollab(collab.ID)
}
