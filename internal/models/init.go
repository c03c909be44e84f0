package models

import (
	"strings"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@colaboreaza.ro"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		UserID:       NewPublicID(constants.IDPrefixUser),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Name:         "Administrator",
		UserType:     constants.UserTypeBrand,
		IsAdmin:      true,
		Status:       constants.UserStatusActive,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}

	return nil
}

// InitDefaultSettings 初始化默认平台设置
func InitDefaultSettings(defaultCommissionRate float64) error {
	var setting Setting
	err := DB.Where("key = ?", constants.SettingKeyCommission).First(&setting).Error
	if err == nil {
		return nil
	}
	if defaultCommissionRate < 0 || defaultCommissionRate > 100 {
		defaultCommissionRate = constants.DefaultCommissionRatePercent
	}
	setting = Setting{
		Key:       constants.SettingKeyCommission,
		ValueJSON: JSON{constants.SettingFieldRate: defaultCommissionRate},
	}
	return DB.Create(&setting).Error
}
