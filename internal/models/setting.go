package models

// Setting 平台设置表（键值对存储）
// 佣金费率、站点配置等运行时可调项都落在这里
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`  // 配置键
	ValueJSON JSON   `gorm:"type:json" json:"value"` // 配置值
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
