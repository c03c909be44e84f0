package service

import (
	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/repository"
)

// StatsService 统计服务
type StatsService struct {
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	collabRepo     repository.CollaborationRepository
	appRepo        repository.ApplicationRepository
	disputeRepo    repository.DisputeRepository
	cancelRepo     repository.CancellationRepository
	commissionRepo repository.CommissionRepository
}

// NewStatsService 创建统计服务
func NewStatsService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, collabRepo repository.CollaborationRepository, appRepo repository.ApplicationRepository, disputeRepo repository.DisputeRepository, cancelRepo repository.CancellationRepository, commissionRepo repository.CommissionRepository) *StatsService {
	return &StatsService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		collabRepo:     collabRepo,
		appRepo:        appRepo,
		disputeRepo:    disputeRepo,
		cancelRepo:     cancelRepo,
		commissionRepo: commissionRepo,
	}
}

// PublicStats 公开统计
type PublicStats struct {
	Brands               int64 `json:"brands"`
	Influencers          int64 `json:"influencers"`
	AvailableInfluencers int64 `json:"available_influencers"`
	ActiveCollaborations int64 `json:"active_collaborations"`
}

// AdminStats 管理端统计
type AdminStats struct {
	PublicStats
	TotalCollaborations  int64                         `json:"total_collaborations"`
	TotalApplications    int64                         `json:"total_applications"`
	OpenDisputes         int64                         `json:"open_disputes"`
	PendingCancellations int64                         `json:"pending_cancellations"`
	Commissions          *repository.CommissionSummary `json:"commissions"`
}

// Public 公开统计数据
func (s *StatsService) Public() (*PublicStats, error) {
	brands, err := s.userRepo.CountByType(constants.UserTypeBrand)
	if err != nil {
		return nil, err
	}
	influencers, err := s.userRepo.CountByType(constants.UserTypeInfluencer)
	if err != nil {
		return nil, err
	}
	available, err := s.profileRepo.CountAvailable()
	if err != nil {
		return nil, err
	}
	active, err := s.collabRepo.CountByStatus(constants.CollabStatusActive)
	if err != nil {
		return nil, err
	}
	return &PublicStats{
		Brands:               brands,
		Influencers:          influencers,
		AvailableInfluencers: available,
		ActiveCollaborations: active,
	}, nil
}

// Admin 管理端统计数据
func (s *StatsService) Admin() (*AdminStats, error) {
	public, err := s.Public()
	if err != nil {
		return nil, err
	}
	totalCollabs, err := s.collabRepo.CountByStatus("")
	if err != nil {
		return nil, err
	}
	totalApps, err := s.appRepo.CountAll()
	if err != nil {
		return nil, err
	}
	openDisputes, err := s.disputeRepo.CountOpen()
	if err != nil {
		return nil, err
	}
	_, pendingCancellations, err := s.cancelRepo.List(repository.CancellationListFilter{
		Status:   constants.CancellationStatusPendingAdminReview,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	commissions, err := s.commissionRepo.Summary(repository.CommissionListFilter{})
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		PublicStats:          *public,
		TotalCollaborations:  totalCollabs,
		TotalApplications:    totalApps,
		OpenDisputes:         openDisputes,
		PendingCancellations: pendingCancellations,
		Commissions:          commissions,
	}, nil
}
