package service

import (
	"regexp"
	"strings"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// ProfileService 达人档案服务
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService 创建档案服务
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// ProfileInput 创建 / 更新档案输入
type ProfileInput struct {
	Username               string
	Bio                    string
	Niches                 []string
	Platforms              []string
	AudienceSize           int64
	EngagementRate         float64
	PricePerPost           *models.Money
	PreviousCollaborations []string
	FeaturedPosts          []string
	Available              *bool
}

// Create 创建达人档案
func (s *ProfileService) Create(userID uint, input ProfileInput) (*models.InfluencerProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.UserType != constants.UserTypeInfluencer {
		return nil, ErrNotInfluencer
	}

	exist, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrProfileExists
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	taken, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrUsernameTaken
	}

	profile := &models.InfluencerProfile{
		UserID:                 userID,
		Username:               username,
		Bio:                    strings.TrimSpace(input.Bio),
		Niches:                 input.Niches,
		Platforms:              input.Platforms,
		AudienceSize:           input.AudienceSize,
		EngagementRate:         input.EngagementRate,
		PricePerPost:           input.PricePerPost,
		PreviousCollaborations: input.PreviousCollaborations,
		FeaturedPosts:          input.FeaturedPosts,
		Available:              true,
	}
	if input.Available != nil {
		profile.Available = *input.Available
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update 更新达人档案
func (s *ProfileService) Update(userID uint, input ProfileInput) (*models.InfluencerProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if username := strings.ToLower(strings.TrimSpace(input.Username)); username != "" && username != profile.Username {
		if !usernamePattern.MatchString(username) {
			return nil, ErrInvalidUsername
		}
		taken, err := s.profileRepo.GetByUsername(username)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.UserID != userID {
			return nil, ErrUsernameTaken
		}
		profile.Username = username
	}

	profile.Bio = strings.TrimSpace(input.Bio)
	if input.Niches != nil {
		profile.Niches = input.Niches
	}
	if input.Platforms != nil {
		profile.Platforms = input.Platforms
	}
	if input.AudienceSize > 0 {
		profile.AudienceSize = input.AudienceSize
	}
	if input.EngagementRate > 0 {
		profile.EngagementRate = input.EngagementRate
	}
	if input.PricePerPost != nil {
		profile.PricePerPost = input.PricePerPost
	}
	if input.PreviousCollaborations != nil {
		profile.PreviousCollaborations = input.PreviousCollaborations
	}
	if input.FeaturedPosts != nil {
		profile.FeaturedPosts = input.FeaturedPosts
	}
	if input.Available != nil {
		profile.Available = *input.Available
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUserID 获取当前用户档案
func (s *ProfileService) GetByUserID(userID uint) (*models.InfluencerProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetByUsername 按用户名获取公开档案
func (s *ProfileService) GetByUsername(username string) (*models.InfluencerProfile, error) {
	profile, err := s.profileRepo.GetByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
