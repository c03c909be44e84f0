package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewPublicID 生成对外暴露的短 ID，形如 collab_1a2b3c4d5e6f
func NewPublicID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:12]
}
