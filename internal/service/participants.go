package service

import (
	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
)

// participantRole 判断用户在合作中的角色
// 品牌方为合作归属者，达人需持有已接受的申请，其余返回空串
func participantRole(appRepo repository.ApplicationRepository, collab *models.Collaboration, userID uint) (string, error) {
	if collab.BrandUserID == userID {
		return constants.UserTypeBrand, nil
	}
	app, err := appRepo.GetByCollabAndInfluencer(collab.ID, userID)
	if err != nil {
		return "", err
	}
	if app != nil && app.Status == constants.ApplicationStatusAccepted {
		return constants.UserTypeInfluencer, nil
	}
	return "", nil
}
