package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
)

// SettingService 设置业务服务
type SettingService struct {
	repo        repository.SettingRepository
	defaultRate float64
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository, defaultRate float64) *SettingService {
	if defaultRate <= 0 || defaultRate > 100 {
		defaultRate = constants.DefaultCommissionRatePercent
	}
	return &SettingService{repo: repo, defaultRate: defaultRate}
}

// CommissionRate 获取当前平台佣金率（百分比）
func (s *SettingService) CommissionRate() (float64, error) {
	if s == nil {
		return constants.DefaultCommissionRatePercent, nil
	}
	setting, err := s.repo.GetByKey(constants.SettingKeyCommission)
	if err != nil {
		return 0, err
	}
	if setting == nil {
		return s.defaultRate, nil
	}
	raw, ok := setting.ValueJSON[constants.SettingFieldRate]
	if !ok {
		return s.defaultRate, nil
	}
	rate, err := parseSettingFloat(raw)
	if err != nil {
		return s.defaultRate, nil
	}
	if rate < 0 || rate > 100 {
		return s.defaultRate, nil
	}
	return rate, nil
}

// SetCommissionRate 更新平台佣金率
func (s *SettingService) SetCommissionRate(rate float64) (float64, error) {
	if rate < 0 || rate > 100 {
		return 0, ErrInvalidCommissionRate
	}
	_, err := s.repo.Upsert(constants.SettingKeyCommission, models.JSON{
		constants.SettingFieldRate: rate,
	})
	if err != nil {
		return 0, err
	}
	return rate, nil
}

// GetConfig 获取站点配置（合并默认值）
func (s *SettingService) GetConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

func parseSettingFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported setting value type %T", value)
	}
}
